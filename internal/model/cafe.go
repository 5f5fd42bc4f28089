// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Cafe, CafeRepository
package model

import (
	"context"

	"github.com/uptrace/bun"
)

// Ограничения длины колонок таблицы cafes
const (
	MaxNameLength     = 250
	MaxURLLength      = 500
	MaxLocationLength = 250
	MaxSeatsLength    = 250
	MaxPriceLength    = 250
)

// Cafe представляет запись о кафе
type Cafe struct {
	bun.BaseModel `bun:"table:cafes"`

	ID           int     `bun:"id,pk,autoincrement" json:"id" yaml:"-"`
	Name         string  `bun:"name,unique,notnull,type:varchar(250)" json:"name" yaml:"name"`
	MapURL       string  `bun:"map_url,notnull,type:varchar(500)" json:"map_url" yaml:"map_url"`
	ImgURL       string  `bun:"img_url,notnull,type:varchar(500)" json:"img_url" yaml:"img_url"`
	Location     string  `bun:"location,notnull,type:varchar(250)" json:"location" yaml:"location"`
	Seats        string  `bun:"seats,notnull,type:varchar(250)" json:"seats" yaml:"seats"`
	HasToilet    bool    `bun:"has_toilet,notnull" json:"has_toilet" yaml:"has_toilet"`
	HasWifi      bool    `bun:"has_wifi,notnull" json:"has_wifi" yaml:"has_wifi"`
	HasSockets   bool    `bun:"has_sockets,notnull" json:"has_sockets" yaml:"has_sockets"`
	CanTakeCalls bool    `bun:"can_take_calls,notnull" json:"can_take_calls" yaml:"can_take_calls"`
	CoffeePrice  *string `bun:"coffee_price,type:varchar(250)" json:"coffee_price" yaml:"coffee_price"`
}

// Validate проверяет обязательные поля кафе перед сохранением
func (c *Cafe) Validate() error {
	var errors ValidationErrors

	required := []struct {
		field string
		value string
		max   int
	}{
		{"name", c.Name, MaxNameLength},
		{"map_url", c.MapURL, MaxURLLength},
		{"img_url", c.ImgURL, MaxURLLength},
		{"location", c.Location, MaxLocationLength},
		{"seats", c.Seats, MaxSeatsLength},
	}

	for _, r := range required {
		if err := ValidateRequired(r.field, r.value); err != nil {
			errors = append(errors, err.(ValidationError))
			continue
		}
		if err := ValidateLength(r.field, r.value, 1, r.max); err != nil {
			errors = append(errors, err.(ValidationError))
		}
	}

	for _, u := range []struct{ field, value string }{{"map_url", c.MapURL}, {"img_url", c.ImgURL}} {
		if err := ValidateURL(u.field, u.value); err != nil {
			errors = append(errors, err.(ValidationError))
		}
	}

	if c.CoffeePrice != nil {
		if err := ValidateLength("coffee_price", *c.CoffeePrice, 0, MaxPriceLength); err != nil {
			errors = append(errors, err.(ValidationError))
		}
	}

	if errors.HasErrors() {
		return errors
	}

	return nil
}

// Price возвращает цену кофе или пустую строку, если она не указана
func (c *Cafe) Price() string {
	if c.CoffeePrice == nil {
		return ""
	}
	return *c.CoffeePrice
}

// PriceOf возвращает указатель на цену; пустая строка означает отсутствие цены
func PriceOf(price string) *string {
	if price == "" {
		return nil
	}
	return &price
}

// CafeRepository определяет интерфейс для работы с кафе
type CafeRepository interface {
	Create(ctx context.Context, cafe *Cafe) error
	GetAll(ctx context.Context) ([]Cafe, error)
	GetByID(ctx context.Context, id int) (*Cafe, error)
	GetByLocation(ctx context.Context, location string) ([]Cafe, error)
	UpdatePrice(ctx context.Context, id int, price *string) (*Cafe, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

package form

import (
	"strings"

	"cafes/internal/model"
)

// Choice представляет вариант выбора в select
type Choice struct {
	Value string
	Label string
}

// YesNoChoices варианты для полей удобств
var YesNoChoices = []Choice{
	{Value: "1", Label: "Yes"},
	{Value: "0", Label: "No"},
}

// AddCafeForm форма предложения нового кафе
type AddCafeForm struct {
	Name        string `form:"name" binding:"notblank,max=250"`
	MapURL      string `form:"map_url" binding:"notblank,url,max=500"`
	ImgURL      string `form:"img_url" binding:"notblank,url,max=500"`
	Location    string `form:"loc" binding:"notblank,max=250"`
	Seats       string `form:"seats" binding:"notblank,max=250"`
	Toilet      string `form:"toilet" binding:"yesno"`
	Wifi        string `form:"wifi" binding:"yesno"`
	Sockets     string `form:"sockets" binding:"yesno"`
	Calls       string `form:"calls" binding:"yesno"`
	CoffeePrice string `form:"coffee_price" binding:"notblank,max=250"`
}

// Cafe преобразует проверенную форму в модель
func (f *AddCafeForm) Cafe() *model.Cafe {
	return &model.Cafe{
		Name:         strings.TrimSpace(f.Name),
		MapURL:       strings.TrimSpace(f.MapURL),
		ImgURL:       strings.TrimSpace(f.ImgURL),
		Location:     strings.TrimSpace(f.Location),
		Seats:        strings.TrimSpace(f.Seats),
		HasToilet:    yes(f.Toilet),
		HasWifi:      yes(f.Wifi),
		HasSockets:   yes(f.Sockets),
		CanTakeCalls: yes(f.Calls),
		CoffeePrice:  model.PriceOf(strings.TrimSpace(f.CoffeePrice)),
	}
}

func yes(value string) bool {
	v, _ := ParseYesNo(value)
	return v
}

// ContactForm форма обратной связи
type ContactForm struct {
	Reason string `form:"reason" binding:"notblank,max=250"`
	Email  string `form:"email" binding:"notblank,email,max=250"`
	Body   string `form:"body" binding:"notblank,max=5000"`
}

// Amenity описывает поле выбора да/нет для шаблона
type Amenity struct {
	Name  string
	Label string
	Value string
}

// Amenities возвращает поля удобств в порядке отображения
func (f *AddCafeForm) Amenities() []Amenity {
	return []Amenity{
		{Name: "toilet", Label: "Are Restrooms Available?", Value: f.Toilet},
		{Name: "wifi", Label: "Is Public Wifi Available?", Value: f.Wifi},
		{Name: "sockets", Label: "Are Sockets Available?", Value: f.Sockets},
		{Name: "calls", Label: "Are customers allowed to make calls?", Value: f.Calls},
	}
}

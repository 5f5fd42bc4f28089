// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cafes/internal/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// CafeRepository реализует интерфейс для работы с кафе
type CafeRepository struct {
	db     bun.IDB
	logger *zap.Logger
}

var _ model.CafeRepository = (*CafeRepository)(nil)

// NewCafeRepository создает новый репозиторий кафе
func NewCafeRepository(db bun.IDB, logger *zap.Logger) *CafeRepository {
	return &CafeRepository{
		db:     db,
		logger: logger,
	}
}

// Create создает новое кафе и заполняет его ID
func (r *CafeRepository) Create(ctx context.Context, cafe *model.Cafe) error {
	cafe.Name = strings.TrimSpace(cafe.Name)

	if err := cafe.Validate(); err != nil {
		return err
	}

	_, err := r.db.NewInsert().
		Model(cafe).
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create cafe %q: %w", cafe.Name, model.ErrDuplicateName)
		}
		return fmt.Errorf("failed to create cafe: %w", err)
	}

	r.logger.Debug("Cafe created", zap.Int("cafe_id", cafe.ID), zap.String("name", cafe.Name))
	return nil
}

// GetAll возвращает все кафе, отсортированные по имени
func (r *CafeRepository) GetAll(ctx context.Context) ([]model.Cafe, error) {
	var cafes []model.Cafe

	err := r.db.NewSelect().
		Model(&cafes).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query cafes: %w", err)
	}

	return cafes, nil
}

// GetByID возвращает кафе по ID
func (r *CafeRepository) GetByID(ctx context.Context, id int) (*model.Cafe, error) {
	cafe := new(model.Cafe)

	err := r.db.NewSelect().
		Model(cafe).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cafe by ID: %w", err)
	}

	return cafe, nil
}

// GetByLocation возвращает кафе с точным совпадением локации
func (r *CafeRepository) GetByLocation(ctx context.Context, location string) ([]model.Cafe, error) {
	var cafes []model.Cafe

	err := r.db.NewSelect().
		Model(&cafes).
		Where("location = ?", location).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query cafes by location: %w", err)
	}

	return cafes, nil
}

// UpdatePrice обновляет цену кофе; остальные поля не меняются
func (r *CafeRepository) UpdatePrice(ctx context.Context, id int, price *string) (*model.Cafe, error) {
	res, err := r.db.NewUpdate().
		Model((*model.Cafe)(nil)).
		Set("coffee_price = ?", price).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update cafe price: %w", err)
	}

	if err := expectAffected(res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет кафе
func (r *CafeRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.NewDelete().
		Model((*model.Cafe)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete cafe: %w", err)
	}

	return expectAffected(res)
}

// Count возвращает количество кафе
func (r *CafeRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.Cafe)(nil)).
		Count(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to count cafes: %w", err)
	}

	return count, nil
}

// expectAffected возвращает ErrNotFound, если запрос не затронул ни одной строки
func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникальности
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(sqliteErr.Error(), "UNIQUE")
	}

	return false
}

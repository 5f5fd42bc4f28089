package service

import (
	"context"

	"cafes/internal/model"
)

// CafeServiceInterface определяет интерфейс для работы с кафе
type CafeServiceInterface interface {
	Add(ctx context.Context, cafe *model.Cafe) error
	List(ctx context.Context) ([]model.Cafe, error)
	Get(ctx context.Context, id int) (*model.Cafe, error)
	Search(ctx context.Context, location string) ([]model.Cafe, error)
	Random(ctx context.Context) (*model.Cafe, error)
	UpdatePrice(ctx context.Context, id int, price string) (*model.Cafe, error)
	ReportClosed(ctx context.Context, id int, apiKey string) error
}

// ContactServiceInterface определяет интерфейс для обратной связи
type ContactServiceInterface interface {
	Submit(ctx context.Context, reason, email, body string) error
}

var (
	_ CafeServiceInterface    = (*CafeService)(nil)
	_ ContactServiceInterface = (*ContactService)(nil)
)

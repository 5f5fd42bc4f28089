// Package service содержит бизнес-логику приложения.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"cafes/internal/auth"
	"cafes/internal/model"
	"cafes/internal/notify"

	"go.uber.org/zap"
)

// CafeService содержит бизнес-логику для работы с кафе
type CafeService struct {
	repo     model.CafeRepository
	verifier auth.KeyVerifier
	notifier notify.Notifier
	pick     func(n int) int
	logger   *zap.Logger
}

// NewCafeService создает новый сервис кафе
func NewCafeService(repo model.CafeRepository, verifier auth.KeyVerifier, notifier notify.Notifier, logger *zap.Logger) *CafeService {
	return &CafeService{
		repo:     repo,
		verifier: verifier,
		notifier: notifier,
		pick:     rand.IntN,
		logger:   logger,
	}
}

// Add сохраняет новое кафе и уведомляет администратора
func (s *CafeService) Add(ctx context.Context, cafe *model.Cafe) error {
	if err := s.repo.Create(ctx, cafe); err != nil {
		return err
	}

	s.logger.Info("Cafe added",
		zap.Int("cafe_id", cafe.ID),
		zap.String("name", cafe.Name),
		zap.String("location", cafe.Location))

	s.notifyAdmin(ctx, notify.NewCafeMessage(cafe))
	return nil
}

// List возвращает все кафе, отсортированные по имени
func (s *CafeService) List(ctx context.Context) ([]model.Cafe, error) {
	return s.repo.GetAll(ctx)
}

// Get возвращает кафе по ID
func (s *CafeService) Get(ctx context.Context, id int) (*model.Cafe, error) {
	return s.repo.GetByID(ctx, id)
}

// Search возвращает кафе в указанной локации
func (s *CafeService) Search(ctx context.Context, location string) ([]model.Cafe, error) {
	return s.repo.GetByLocation(ctx, location)
}

// Random возвращает случайное кафе из всего каталога
func (s *CafeService) Random(ctx context.Context) (*model.Cafe, error) {
	cafes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(cafes) == 0 {
		return nil, fmt.Errorf("catalog is empty: %w", model.ErrNotFound)
	}

	return &cafes[s.pick(len(cafes))], nil
}

// UpdatePrice меняет цену кофе; пустая цена сбрасывает значение
func (s *CafeService) UpdatePrice(ctx context.Context, id int, price string) (*model.Cafe, error) {
	if err := model.ValidateLength("coffee_price", price, 0, model.MaxPriceLength); err != nil {
		return nil, model.ValidationErrors{err.(model.ValidationError)}
	}

	cafe, err := s.repo.UpdatePrice(ctx, id, model.PriceOf(price))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cafe price updated",
		zap.Int("cafe_id", id),
		zap.String("coffee_price", price))

	return cafe, nil
}

// ReportClosed удаляет кафе после проверки API ключа
func (s *CafeService) ReportClosed(ctx context.Context, id int, apiKey string) error {
	if !s.verifier.Verify(apiKey) {
		s.logger.Warn("Rejected closure report with invalid API key", zap.Int("cafe_id", id))
		return model.ErrForbidden
	}

	cafe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Cafe deleted",
		zap.Int("cafe_id", id),
		zap.String("name", cafe.Name))

	s.notifyAdmin(ctx, notify.ClosedCafeMessage(cafe))
	return nil
}

// notifyAdmin отправляет уведомление; ошибка только логируется
func (s *CafeService) notifyAdmin(ctx context.Context, text string) {
	if err := s.notifier.Notify(ctx, text); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to notify admin", zap.Error(err))
	}
}

package service

import (
	"context"
	"fmt"

	"cafes/internal/notify"

	"go.uber.org/zap"
)

// ContactService пересылает сообщения из формы обратной связи администратору
type ContactService struct {
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewContactService создает новый сервис обратной связи
func NewContactService(notifier notify.Notifier, logger *zap.Logger) *ContactService {
	return &ContactService{
		notifier: notifier,
		logger:   logger,
	}
}

// Submit отправляет сообщение администратору
func (s *ContactService) Submit(ctx context.Context, reason, email, body string) error {
	if err := s.notifier.Notify(ctx, notify.ContactMessage(reason, email, body)); err != nil {
		return fmt.Errorf("failed to deliver contact message: %w", err)
	}

	s.logger.Info("Contact message delivered",
		zap.String("reason", reason),
		zap.String("email", email))
	return nil
}

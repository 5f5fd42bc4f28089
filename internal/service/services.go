package service

import (
	"cafes/internal/auth"
	"cafes/internal/model"
	"cafes/internal/notify"

	"go.uber.org/zap"
)

// Services содержит все сервисы приложения
type Services struct {
	Cafe    *CafeService
	Contact *ContactService
}

// NewServices создает все сервисы
func NewServices(repo model.CafeRepository, verifier auth.KeyVerifier, notifier notify.Notifier, logger *zap.Logger) *Services {
	return &Services{
		Cafe:    NewCafeService(repo, verifier, notifier, logger),
		Contact: NewContactService(notifier, logger),
	}
}

// Package auth содержит проверку API ключа для удаления кафе.
package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost стоимость bcrypt для новых хешей
const DefaultCost = 12

// KeyVerifier проверяет API ключ
type KeyVerifier interface {
	Verify(key string) bool
}

// BcryptVerifier сравнивает ключ с bcrypt хешем
type BcryptVerifier struct {
	hash []byte
}

var _ KeyVerifier = (*BcryptVerifier)(nil)

// NewBcryptVerifier создает верификатор по готовому хешу
func NewBcryptVerifier(hash string) (*BcryptVerifier, error) {
	hash = strings.TrimSpace(hash)
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid API key hash: %w", err)
	}
	return &BcryptVerifier{hash: []byte(hash)}, nil
}

// NewVerifierFromKey хеширует открытый ключ и создает верификатор
func NewVerifierFromKey(key string, cost int) (*BcryptVerifier, error) {
	hash, err := HashKey(key, cost)
	if err != nil {
		return nil, err
	}
	return &BcryptVerifier{hash: []byte(hash)}, nil
}

// Verify проверяет ключ; сравнение bcrypt выполняется за постоянное время
func (v *BcryptVerifier) Verify(key string) bool {
	if key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(key)) == nil
}

// HashKey создает bcrypt хеш ключа
func HashKey(key string, cost int) (string, error) {
	if key == "" {
		return "", fmt.Errorf("API key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("hash API key: %w", err)
	}
	return string(hash), nil
}

// DenyAll отклоняет любой ключ; используется, когда ключ не настроен
type DenyAll struct{}

// Verify всегда возвращает false
func (DenyAll) Verify(string) bool {
	return false
}

// Package model содержит базовые ошибки домена.
//
// Группа: BASE - Базовые компоненты
// Содержит: ErrNotFound, ErrDuplicateName, ErrForbidden
package model

import "errors"

var (
	// ErrNotFound возвращается, когда кафе с указанным id или локацией не найдено
	ErrNotFound = errors.New("cafe not found")

	// ErrDuplicateName возвращается при нарушении уникальности имени
	ErrDuplicateName = errors.New("cafe with this name already exists")

	// ErrForbidden возвращается при неверном API ключе
	ErrForbidden = errors.New("forbidden")
)

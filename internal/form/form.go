// Package form содержит привязку и валидацию HTML форм.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldErrors содержит сообщения об ошибках по именам полей формы
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Add добавляет ошибку поля
func (fe FieldErrors) Add(field, message string) {
	fe[field] = message
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register регистрирует правила валидации форм в движке gin
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		// Имена полей в ошибках совпадают с именами полей формы
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			registerErr = fmt.Errorf("register notblank: %w", err)
			return
		}
		if err := v.RegisterValidation("yesno", yesNo); err != nil {
			registerErr = fmt.Errorf("register yesno: %w", err)
		}
	})
	return registerErr
}

// Bind заполняет dst из тела формы и проверяет его.
// При ошибке валидации возвращает FieldErrors.
func Bind(c *gin.Context, dst any) error {
	err := c.ShouldBindWith(dst, binding.Form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(FieldErrors, len(verrs))
		for _, fe := range verrs {
			fields.Add(fe.Field(), message(fe))
		}
		return fields
	}

	return fmt.Errorf("failed to parse form: %w", err)
}

// message возвращает текст ошибки для правила валидации
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "This field is required."
	case "url":
		return "Invalid URL."
	case "email":
		return "Invalid email address."
	case "yesno":
		return "Please choose Yes or No."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func yesNo(fl validator.FieldLevel) bool {
	_, ok := ParseYesNo(fl.Field().String())
	return ok
}

// ParseYesNo разбирает значение выбора да/нет.
// Допустимы 1/0, yes/no, y/n, true/false, on/off без учета регистра.
func ParseYesNo(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "yes", "y", "true", "on":
		return true, true
	case "0", "no", "n", "false", "off":
		return false, true
	default:
		return false, false
	}
}

// Package web содержит HTML шаблоны сервиса.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// Имена страниц
const (
	PageIndex   = "index.html"
	PageCafes   = "cafes.html"
	PageCafe    = "cafe.html"
	PageSuggest = "suggest.html"
	PageContact = "contact.html"
)

// Field описывает текстовое поле формы для шаблона
type Field struct {
	Name  string
	Label string
	Value string
	Error string
}

// Templates разбирает встроенные шаблоны
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Funcs возвращает функции, доступные в шаблонах
func Funcs() template.FuncMap {
	return template.FuncMap{
		"title": title,
		"yesno": yesno,
		"price": price,
		"field": field,
	}
}

// title приводит название локации к заголовочному регистру
func title(s string) string {
	// Caser хранит состояние, поэтому создается на каждый вызов
	return cases.Title(language.English).String(s)
}

func yesno(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func price(p *string) string {
	if p == nil || *p == "" {
		return "Not listed"
	}
	return *p
}

func field(name, label, value string, errs map[string]string) Field {
	return Field{
		Name:  name,
		Label: label,
		Value: value,
		Error: errs[name],
	}
}

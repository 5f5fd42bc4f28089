package notify

import (
	"fmt"
	"html"
	"strings"

	"cafes/internal/model"
)

// NewCafeMessage формирует сообщение о новом кафе
func NewCafeMessage(cafe *model.Cafe) string {
	var b strings.Builder
	b.WriteString("☕ <b>New cafe added</b>\n")
	fmt.Fprintf(&b, "#%d %s (%s)\n", cafe.ID, html.EscapeString(cafe.Name), html.EscapeString(cafe.Location))
	fmt.Fprintf(&b, "Seats: %s\n", html.EscapeString(cafe.Seats))
	if price := cafe.Price(); price != "" {
		fmt.Fprintf(&b, "Coffee: %s\n", html.EscapeString(price))
	}
	fmt.Fprintf(&b, "Map: %s", html.EscapeString(cafe.MapURL))
	return b.String()
}

// ClosedCafeMessage формирует сообщение об удалении закрывшегося кафе
func ClosedCafeMessage(cafe *model.Cafe) string {
	return fmt.Sprintf("🚫 <b>Cafe reported closed</b>\n#%d %s (%s) was removed from the catalog",
		cafe.ID, html.EscapeString(cafe.Name), html.EscapeString(cafe.Location))
}

// ContactMessage формирует сообщение из формы обратной связи
func ContactMessage(reason, email, body string) string {
	return fmt.Sprintf("✉️ <b>Contact: %s</b>\nFrom: %s\n\n%s",
		html.EscapeString(reason), html.EscapeString(email), html.EscapeString(body))
}

// Package notify содержит уведомления администратора.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier отправляет сообщение администратору
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Sender определяет часть Telegram Bot API, нужную для отправки сообщений
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier отправляет уведомления в чат Telegram
type TelegramNotifier struct {
	sender Sender
	chatID int64
	logger *zap.Logger
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier создает уведомитель на основе токена бота
func NewTelegramNotifier(botToken string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false
	logger.Info("Telegram notifier created", zap.String("username", bot.Self.UserName))

	return NewTelegramNotifierWithSender(bot, chatID, logger), nil
}

// NewTelegramNotifierWithSender создает уведомитель с готовым отправителем
func NewTelegramNotifierWithSender(sender Sender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender: sender,
		chatID: chatID,
		logger: logger,
	}
}

// Notify отправляет сообщение в чат администратора
func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	n.logger.Debug("Admin notification sent", zap.Int64("chat_id", n.chatID))
	return nil
}

// LogNotifier пишет уведомления в лог, когда Telegram не настроен
type LogNotifier struct {
	logger *zap.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier создает уведомитель, пишущий в лог
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify записывает сообщение в лог
func (n *LogNotifier) Notify(_ context.Context, text string) error {
	n.logger.Info("Admin notification", zap.String("message", text))
	return nil
}

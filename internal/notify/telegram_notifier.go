package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/otabek-m/masterbook/internal/model"
	"go.uber.org/zap"
)

// TelegramNotifier шлёт сообщение в админский чат при создании и отмене
// бронирования. Best-effort: ошибки логируются и не влияют на запрос.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier создаёт уведомитель. Без токена или chatID возвращает
// nil — сервисы трактуют nil-нотификатор как "уведомления выключены".
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		logger.Info("Telegram notifications disabled")
		return nil, nil
	}

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

// BookingCreated уведомление о новой записи
func (n *TelegramNotifier) BookingCreated(ctx context.Context, booking *model.Booking) {
	text := fmt.Sprintf(
		"📅 Новая запись\n%s, %s\nКлиент: %s (%s)",
		booking.Date, booking.Time, booking.ClientName, booking.ClientPhone,
	)
	n.send(ctx, booking.ID, text)
}

// BookingCanceled уведомление об отмене записи
func (n *TelegramNotifier) BookingCanceled(ctx context.Context, booking *model.Booking) {
	text := fmt.Sprintf(
		"❌ Запись отменена\n%s, %s\nКлиент: %s (%s)",
		booking.Date, booking.Time, booking.ClientName, booking.ClientPhone,
	)
	n.send(ctx, booking.ID, text)
}

func (n *TelegramNotifier) send(ctx context.Context, bookingID, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Warn("Failed to send telegram notification",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
	}
}

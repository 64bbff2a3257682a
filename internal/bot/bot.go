package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// Facade describes purchase operations required by the chat front end.
type Facade interface {
	Tariffs() []model.Tariff
	Purchase(ctx context.Context, tgUserID, chatID, tariffCode string) (*model.Order, *model.Invoice, error)
}

// Bot is the telegram front end: it shows the tariff menu and turns a tariff
// selection into a purchase with a QR to pay.
type Bot struct {
	api    *tgbotapi.BotAPI
	facade Facade
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates the bot using the given token.
func New(token string, facade Facade, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}
	return &Bot{api: api, facade: facade, logger: logger}, nil
}

// Start begins long polling for updates in the background.
func (b *Bot) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.done = make(chan struct{})

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	go func() {
		defer close(b.done)
		for {
			select {
			case <-runCtx.Done():
				b.api.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				b.handleUpdate(runCtx, update)
			}
		}
	}()
}

// Stop cancels polling and waits for the update loop to drain.
func (b *Bot) Stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	b.logger.Info("telegram update",
		slog.Int("update_id", update.UpdateID),
		slog.Int64("from", msg.From.ID),
	)

	switch msg.Command() {
	case "start", "menu":
		b.sendMenu(msg.Chat.ID)
		return
	case "help":
		b.reply(msg.Chat.ID, "Доступно: /menu — открыть меню тарифов.")
		return
	}

	if tariffCode, ok := b.tariffByTitle(msg.Text); ok {
		b.purchase(ctx, msg.From.ID, msg.Chat.ID, tariffCode)
		return
	}

	b.reply(msg.Chat.ID, "Не понял. Команда /menu — открыть меню тарифов.")
}

func (b *Bot) tariffByTitle(text string) (string, bool) {
	for _, t := range b.facade.Tariffs() {
		if t.Title == text {
			return t.Code, true
		}
	}
	return "", false
}

func (b *Bot) purchase(ctx context.Context, userID, chatID int64, tariffCode string) {
	order, invoice, err := b.facade.Purchase(ctx,
		strconv.FormatInt(userID, 10), strconv.FormatInt(chatID, 10), tariffCode)
	if err != nil {
		b.logger.Error("purchase failed",
			slog.String("tariff", tariffCode), slog.String("error", err.Error()))
		b.reply(chatID, "Оплата временно недоступна, попробуйте ещё раз.")
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "invoice.png",
		Bytes: invoice.QRPNG,
	})
	photo.Caption = fmt.Sprintf("Заказ %s на %s. Отсканируйте QR для оплаты.",
		order.ProviderOrderID, FormatAmount(order.AmountKopecks))
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send invoice qr failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) sendMenu(chatID int64) {
	tariffs := b.facade.Tariffs()
	rows := make([][]tgbotapi.KeyboardButton, 0, len(tariffs))
	for _, t := range tariffs {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(t.Title)))
	}

	msg := tgbotapi.NewMessage(chatID, "Выберите тариф:")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send menu failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("send message failed", slog.String("error", err.Error()))
	}
}

// NotifyPaymentOutcome messages the order's chat once its payment resolves.
func (b *Bot) NotifyPaymentOutcome(_ context.Context, order *model.Order) {
	chatID, err := strconv.ParseInt(order.ChatID, 10, 64)
	if err != nil {
		b.logger.Error("order carries non-numeric chat id",
			slog.String("order_id", order.ID), slog.String("chat_id", order.ChatID))
		return
	}

	var text string
	switch order.Status {
	case model.OrderStatusPaid:
		text = fmt.Sprintf("Оплата по заказу %s получена. Тариф %s активирован.",
			order.ProviderOrderID, order.TariffCode)
	case model.OrderStatusFailed:
		text = fmt.Sprintf("Оплата по заказу %s не прошла. Попробуйте оформить тариф ещё раз.",
			order.ProviderOrderID)
	default:
		return
	}
	b.reply(chatID, text)
}

// FormatAmount renders kopecks as rubles, e.g. 100000 -> "1000.00 ₽".
func FormatAmount(amountKopecks int64) string {
	return fmt.Sprintf("%d.%02d ₽", amountKopecks/100, amountKopecks%100)
}

package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot connects the Handler to the Telegram long-polling API.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *zap.Logger
}

// NewBot authenticates against the Telegram Bot API.
func NewBot(token string, handler *Handler, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return &Bot{api: api, handler: handler, logger: logger}, nil
}

// Run polls for updates until ctx is cancelled. Each message is handled to
// completion before the next one starts.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot ready and listening for messages", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.dispatch(ctx, update.Message.Chat.ID, update.Message.Text)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, chatID int64, text string) {
	for _, reply := range b.handler.HandleMessage(ctx, chatID, text) {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		if reply.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("sending reply", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

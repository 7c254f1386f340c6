package services

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"taskly/internal/models"
)

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramRelay messages users who linked a Telegram chat and opted in to task notifications.
type TelegramRelay struct {
	bot     telegramSender
	baseURL string
	log     logrus.FieldLogger
}

// NewTelegramRelay authorizes the bot token against the Bot API.
func NewTelegramRelay(token, baseURL string, log logrus.FieldLogger) (*TelegramRelay, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	log.WithField("bot", bot.Self.UserName).Info("[tg] bot authorized")
	return &TelegramRelay{bot: bot, baseURL: baseURL, log: log}, nil
}

func (r *TelegramRelay) Name() string { return "telegram" }

func (r *TelegramRelay) Deliver(ctx context.Context, user *models.User, n *models.Notification) error {
	if !user.NotifyTelegram || user.TelegramChatID == 0 {
		r.log.WithField("user_id", user.ID).Debug("[tg][skip] chat not linked or disabled")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := n.Message
	if n.Link != "" {
		text += "\n" + r.baseURL + n.Link
	}
	msg := tgbotapi.NewMessage(user.TelegramChatID, text)
	msg.DisableWebPagePreview = true
	if _, err := r.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// maxMessageLength is Telegram's limit on a single message's text.
const maxMessageLength = 4096

var errNoChat = errors.New("chat ID not set")

// TelegramBot long-polls for commands and posts scheduled reports to the
// league chat.
type TelegramBot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
	logger  *zap.SugaredLogger
}

func NewTelegramBot(token string, chatID int64, reports Reports, logger *zap.Logger) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error connecting to telegram: %w", err)
	}

	return &TelegramBot{
		api:     api,
		handler: NewHandler(reports, logger),
		chatID:  chatID,
		logger:  logger.Sugar(),
	}, nil
}

// Start handles commands until ctx is canceled.
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Infow("Authorized on account", "username", t.api.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.api.GetUpdatesChan(u)
	defer t.api.StopReceivingUpdates()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	t.logger.Debugw("Handling command",
		"command", update.Message.Command(), "chat_id", update.Message.Chat.ID)
	reply := t.handler.HandleCommand(ctx, update)
	if err := t.send(reply.ChatID, reply.Text); err != nil {
		t.logger.Errorw("Error replying to command", "command", update.Message.Command(), "error", err)
	}
}

// SendMessage posts text to the configured league chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		t.logger.Error("Chat ID not set")
		return errNoChat
	}
	return t.send(t.chatID, text)
}

// send posts text in Markdown, split to fit Telegram's length limit. A chunk
// Telegram cannot parse as Markdown is resent as plain text.
func (t *TelegramBot) send(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := t.api.Send(msg); err != nil {
			if !isParseError(err) {
				return fmt.Errorf("error sending message: %w", err)
			}
			t.logger.Warnw("Markdown rejected, resending as plain text", "chat_id", chatID, "error", err)
			msg.ParseMode = ""
			if _, err := t.api.Send(msg); err != nil {
				return fmt.Errorf("error sending message: %w", err)
			}
		}
	}
	return nil
}

func isParseError(err error) bool {
	return strings.Contains(err.Error(), "can't parse entities")
}

// splitMessage breaks text into chunks of at most limit bytes, preferring line
// boundaries so Markdown markers stay on one line.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if current.Len()+len(line) > limit {
			flush()
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

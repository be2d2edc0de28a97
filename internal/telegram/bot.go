// Package telegram is the transport adapter: it receives updates over long
// polling, hands text to the dialogue engine and sends the reply back. All
// conversational logic lives in internal/dialog; this package only maps
// chats to sessions and commands to canned replies.
package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avtoline/showroom-bot/internal/dialog"
	"github.com/avtoline/showroom-bot/internal/session"
	"github.com/avtoline/showroom-bot/pkg/logging"
)

// Config holds bot configuration.
type Config struct {
	Token        string
	Engine       *dialog.Engine
	Store        session.Store
	Logger       *logging.Logger
	StartMessage string
	HelpMessage  string
}

// Bot bridges the Telegram API and the dialogue engine.
type Bot struct {
	api          *tgbotapi.BotAPI
	engine       *dialog.Engine
	store        session.Store
	logger       *logging.Logger
	startMessage string
	helpMessage  string
}

func New(cfg Config) (*Bot, error) {
	if cfg.Engine == nil || cfg.Store == nil {
		return nil, fmt.Errorf("telegram: engine and store are required")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot api: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Bot{
		api:          api,
		engine:       cfg.Engine,
		store:        cfg.Store,
		logger:       cfg.Logger,
		startMessage: cfg.StartMessage,
		helpMessage:  cfg.HelpMessage,
	}, nil
}

// Run polls for updates until ctx is cancelled. Messages from different
// chats are handled concurrently; turns within one chat are serialized by
// the session store's lock.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	participantID := strconv.FormatInt(msg.Chat.ID, 10)
	unlock := b.store.Lock(participantID)
	defer unlock()

	sc, err := b.store.Get(ctx, participantID)
	if err != nil {
		b.logger.Error("failed to load session", "participant", participantID, "error", err)
		b.reply(msg.Chat.ID, "Произошла ошибка. Попробуйте снова.")
		return
	}

	var answer string
	switch {
	case msg.IsCommand():
		answer = b.handleCommand(msg.Command(), sc)
	case msg.Text == "":
		answer = "Пожалуйста, отправьте текст."
	default:
		answer = b.engine.Process(ctx, msg.Text, sc)
	}

	if err := b.store.Save(ctx, participantID, sc); err != nil {
		b.logger.Error("failed to save session", "participant", participantID, "error", err)
	}
	b.reply(msg.Chat.ID, answer)
}

func (b *Bot) handleCommand(command string, sc *session.Context) string {
	switch command {
	case "start":
		sc.LastIntent = dialog.IntentHello
		sc.LastReply = b.startMessage
		return b.startMessage
	case "help":
		sc.LastIntent = session.IntentHelp
		sc.LastReply = b.helpMessage
		return b.helpMessage
	case "stats":
		stats := b.engine.Stats(sc)
		return fmt.Sprintf(
			"Статистика:\nОбработано намерений: %d\nОтветов из диалогов: %d\nНеудачных запросов: %d",
			stats.Intent, stats.Retrieved, stats.Failure,
		)
	default:
		return b.helpMessage
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

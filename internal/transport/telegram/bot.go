package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot        *tele.Bot
	dispatcher core.Dispatcher
	sender     *sender
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	dispatcher core.Dispatcher,
) (*Bot, error) {
	return newBot(ctx, settings(cfg), dispatcher)
}

// settings runs handlers synchronously: updates are processed one at a time
// in arrival order, so a chat's dialogue steps never overlap.
func settings(cfg core.TelegramConfig) tele.Settings {
	return tele.Settings{
		Token:       cfg.GetTelegramToken(),
		Poller:      &tele.LongPoller{Timeout: cfg.GetTelegramPollTimeout()},
		Synchronous: true,
	}
}

func newBot(ctx context.Context, pref tele.Settings, dispatcher core.Dispatcher) (*Bot, error) {
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		dispatcher: dispatcher,
		sender:     newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)
	// Buttons and carousel items come back as callbacks carrying the text to send
	b.Handle(&tele.Btn{Unique: callbackUnique}, bot.handleCallback)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleText(c tele.Context) error {
	return b.dispatch(c, c.Text())
}

func (b *Bot) handleCallback(c tele.Context) error {
	_ = c.Respond()
	return b.dispatch(c, c.Data())
}

// dispatch runs one utterance through the dialogue.
func (b *Bot) dispatch(c tele.Context, text string) error {
	ctx := c.Get(baseContextKey).(context.Context)
	conversationID := core.ConversationID(core.ProviderTelegram, strconv.FormatInt(c.Chat().ID, 10))

	_ = c.Notify(tele.Typing)

	reply, err := b.dispatcher.Handle(ctx, conversationID, text)
	if err != nil {
		reply = core.ErrorReply(err)
	}

	return b.sender.sendReply(ctx, c.Chat(), reply)
}

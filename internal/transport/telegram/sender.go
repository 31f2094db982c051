package telegram

import (
	"context"
	"errors"
	"strings"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/log"
	"github.com/sandevgo/asisten/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot     *tele.Bot
	retrier *retry.Retrier
}

func newSender(bot *tele.Bot) *sender {
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = 3
	cfg.Retryable = isRetryable
	return &sender{bot: bot, retrier: retry.NewRetrier(cfg)}
}

// sendReply renders a dialogue reply and sends it, splitting long texts.
// The keyboard, if any, is attached to the last chunk.
func (s *sender) sendReply(ctx context.Context, to tele.Recipient, reply core.Reply) error {
	logger := log.FromCtx(ctx)

	msg, err := renderReply(reply)
	if err != nil {
		logger.Error().Err(err).Msg("failed to render telegram reply")
		msg = message{html: core.ServerFaultMessage}
	}

	chunks := splitHTML(msg.html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		opts := []interface{}{tele.ModeHTML}
		if i == len(chunks)-1 && msg.markup != nil {
			opts = append(opts, msg.markup)
		}

		err := s.retrier.Do(ctx, func() error {
			_, err := s.bot.Send(to, chunk, opts...)
			return err
		})
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Try to find a good break point (newline) in the second half of the chunk
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

// isRetryable rejects errors that another attempt cannot fix.
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, tele.ErrBlockedByUser),
		errors.Is(err, tele.ErrChatNotFound),
		errors.Is(err, tele.ErrKickedFromGroup),
		errors.Is(err, tele.ErrUnauthorized):
		return false
	}
	return true
}

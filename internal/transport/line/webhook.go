package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/log"
	"github.com/sandevgo/asisten/pkg/retry"
)

// Replier sends reply messages for a webhook reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages []messaging_api.MessageInterface) error
}

type apiReplier struct {
	api     *messaging_api.MessagingApiAPI
	retrier *retry.Retrier
}

// NewReplier builds a Replier on top of the Messaging API client.
func NewReplier(cfg core.LineConfig) (Replier, error) {
	api, err := messaging_api.NewMessagingApiAPI(cfg.GetLineChannelToken())
	if err != nil {
		return nil, fmt.Errorf("failed to create line messaging client: %w", err)
	}

	// Reply tokens expire quickly, keep the backoff short.
	rc := retry.NewDefaultConfig()
	rc.MaxRetries = 2
	rc.InitialDelay = 200 * time.Millisecond
	return &apiReplier{api: api, retrier: retry.NewRetrier(rc)}, nil
}

func (r *apiReplier) Reply(ctx context.Context, replyToken string, messages []messaging_api.MessageInterface) error {
	return r.retrier.Do(ctx, func() error {
		_, err := r.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
			ReplyToken: replyToken,
			Messages:   messages,
		})
		return err
	})
}

// Webhook receives LINE callbacks and answers text messages through the
// dialogue.
type Webhook struct {
	secret     string
	dispatcher core.Dispatcher
	replier    Replier
}

func NewWebhook(cfg core.LineConfig, dispatcher core.Dispatcher, replier Replier) *Webhook {
	return &Webhook{
		secret:     cfg.GetLineChannelSecret(),
		dispatcher: dispatcher,
		replier:    replier,
	}
}

func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	cb, err := webhook.ParseRequest(h.secret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			logger.Warn().Msg("rejected line webhook with invalid signature")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("failed to parse line webhook")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Events of one callback are handled in order so that a conversation's
	// steps never interleave.
	for _, event := range cb.Events {
		e, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		text, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		sourceID := sourceOf(e.Source)
		if sourceID == "" {
			logger.Warn().Msgf("line event from unsupported source %T", e.Source)
			continue
		}

		h.handleText(ctx, core.ConversationID(core.ProviderLine, sourceID), e.ReplyToken, text.Text)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Webhook) handleText(ctx context.Context, conversationID, replyToken, text string) {
	logger := log.FromCtx(ctx).With().Str(log.ConversationField, conversationID).Logger()

	reply, err := h.dispatcher.Handle(ctx, conversationID, text)
	if err != nil {
		reply = core.ErrorReply(err)
	}

	messages, err := Render(reply)
	if err != nil {
		logger.Error().Err(err).Msg("failed to render line reply")
		messages = []messaging_api.MessageInterface{messaging_api.TextMessage{Text: core.ServerFaultMessage}}
	}

	if err := h.replier.Reply(ctx, replyToken, messages); err != nil {
		logger.Error().Err(err).Msg("failed to send line reply")
	}
}

func sourceOf(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.GroupId
	case webhook.RoomSource:
		return s.RoomId
	default:
		return ""
	}
}

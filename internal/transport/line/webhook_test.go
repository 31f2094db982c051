package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "channel-secret"

type lineConfig struct{}

func (lineConfig) GetLineChannelSecret() string { return testSecret }
func (lineConfig) GetLineChannelToken() string  { return "token" }

type call struct {
	conversationID string
	text           string
}

type fakeDispatcher struct {
	calls []call
	reply core.Reply
	err   error
}

func (d *fakeDispatcher) Handle(_ context.Context, conversationID, text string) (core.Reply, error) {
	d.calls = append(d.calls, call{conversationID, text})
	return d.reply, d.err
}

type sent struct {
	token    string
	messages []messaging_api.MessageInterface
}

type fakeReplier struct {
	sent []sent
}

func (r *fakeReplier) Reply(_ context.Context, token string, messages []messaging_api.MessageInterface) error {
	r.sent = append(r.sent, sent{token, messages})
	return nil
}

func signedRequest(t *testing.T, body, secret string) *http.Request {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))

	req := httptest.NewRequest(http.MethodPost, "/line/webhook", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return req
}

const textEvent = `{
  "destination": "Ubot",
  "events": [
    {
      "type": "message",
      "mode": "active",
      "timestamp": 1700000000000,
      "webhookEventId": "01H",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "reply-1",
      "source": {"type": "user", "userId": "U42"},
      "message": {"type": "text", "id": "1", "quoteToken": "q", "text": "daftar"}
    },
    {
      "type": "follow",
      "mode": "active",
      "timestamp": 1700000000001,
      "webhookEventId": "01J",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "reply-2",
      "source": {"type": "user", "userId": "U42"},
      "follow": {"isUnblocked": false}
    }
  ]
}`

func TestWebhook_TextMessage(t *testing.T) {
	dispatcher := &fakeDispatcher{reply: core.Text("Silakan kirim NPM kamu")}
	replier := &fakeReplier{}
	h := NewWebhook(lineConfig{}, dispatcher, replier)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, textEvent, testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, call{"line@U42", "daftar"}, dispatcher.calls[0])

	require.Len(t, replier.sent, 1)
	assert.Equal(t, "reply-1", replier.sent[0].token)
	text := replier.sent[0].messages[0].(messaging_api.TextMessage)
	assert.Equal(t, "Silakan kirim NPM kamu", text.Text)
}

func TestWebhook_UserErrorIsReplied(t *testing.T) {
	dispatcher := &fakeDispatcher{err: core.NewUserError(core.ErrNotRegistered, "Kamu belum terdaftar")}
	replier := &fakeReplier{}
	h := NewWebhook(lineConfig{}, dispatcher, replier)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, textEvent, testSecret))

	require.Len(t, replier.sent, 1)
	text := replier.sent[0].messages[0].(messaging_api.TextMessage)
	assert.Contains(t, text.Text, "Kamu belum terdaftar")
}

func TestWebhook_InvalidSignature(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := NewWebhook(lineConfig{}, dispatcher, &fakeReplier{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, textEvent, "wrong-secret"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dispatcher.calls)
}

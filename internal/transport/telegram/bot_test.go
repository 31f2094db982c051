package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type telegramConfig struct{}

func (telegramConfig) GetTelegramToken() string              { return "123:test" }
func (telegramConfig) GetTelegramPollTimeout() time.Duration { return time.Second }

// slowDispatcher records how many Handle calls overlap.
type slowDispatcher struct {
	mu      sync.Mutex
	texts   []string
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (d *slowDispatcher) Handle(_ context.Context, conversationID, text string) (core.Reply, error) {
	n := d.active.Add(1)
	defer d.active.Add(-1)
	for {
		seen := d.maxSeen.Load()
		if n <= seen || d.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	time.Sleep(30 * time.Millisecond)

	d.mu.Lock()
	d.texts = append(d.texts, conversationID+" "+text)
	d.mu.Unlock()
	return core.Text("ok"), nil
}

func newTestBot(t *testing.T, dispatcher core.Dispatcher) *Bot {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	}))
	t.Cleanup(api.Close)

	pref := settings(telegramConfig{})
	pref.Offline = true
	pref.URL = api.URL

	bot, err := newBot(context.Background(), pref, dispatcher)
	require.NoError(t, err)
	return bot
}

func textUpdate(id int, chat int64, text string) tele.Update {
	return tele.Update{
		ID: id,
		Message: &tele.Message{
			ID:     id,
			Chat:   &tele.Chat{ID: chat, Type: tele.ChatPrivate},
			Sender: &tele.User{ID: chat},
			Text:   text,
		},
	}
}

func TestBot_ChatUpdatesAreSerialized(t *testing.T) {
	dispatcher := &slowDispatcher{}
	bot := newTestBot(t, dispatcher)

	bot.bot.ProcessUpdate(textUpdate(1, 42, "daftar"))
	bot.bot.ProcessUpdate(textUpdate(2, 42, "12345678"))

	assert.Eventually(t, func() bool {
		dispatcher.mu.Lock()
		defer dispatcher.mu.Unlock()
		return len(dispatcher.texts) == 2
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, int32(1), dispatcher.maxSeen.Load())
	assert.Equal(t, []string{"telegram@42 daftar", "telegram@42 12345678"}, dispatcher.texts)
}

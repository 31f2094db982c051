package command

import (
	"context"
	"testing"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHandler is a handler with configurable routing metadata.
type stubHandler struct {
	name     string
	keywords []string
}

func (h stubHandler) Name() string                    { return h.name }
func (h stubHandler) Description() string             { return h.name }
func (h stubHandler) Keywords() []string              { return h.keywords }
func (h stubHandler) Grammar() core.Grammar           { return core.GrammarWhole }
func (h stubHandler) Precondition() core.Precondition { return core.PreconditionNone }
func (h stubHandler) States() int                     { return 1 }
func (h stubHandler) Transition(context.Context, string, core.State, string) (core.Result, error) {
	return core.Result{Reply: core.Text(h.name)}, nil
}

func newTestResolver(t *testing.T, handlers ...core.Handler) *Resolver {
	t.Helper()
	r, err := NewResolver(handlers)
	require.NoError(t, err)
	return r
}

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver(t,
		stubHandler{name: "daftar"},
		stubHandler{name: "ganti"},
		stubHandler{name: "jadwal", keywords: []string{"jadwal", "kuliah", "kelas"}},
		stubHandler{name: "nilai", keywords: []string{"nilai", "kuliah", "ipk"}},
		stubHandler{name: "info", keywords: []string{"kuliah"}},
	)

	tests := []struct {
		name       string
		text       string
		wantName   string
		wantMethod core.ResolveMethod
	}{
		{"exact command word", "daftar", "daftar", core.ResolveExact},
		{"exact with arguments", "ganti 12345678 87654321", "ganti", core.ResolveExact},
		{"exact beats keywords", "daftar jadwal kuliah", "daftar", core.ResolveExact},
		{"single keyword", "lihat jadwal dong", "jadwal", core.ResolveKeyword},
		{"case insensitive", "berapa IPK saya", "nilai", core.ResolveKeyword},
		{"rare keyword outweighs common one", "nilai kuliah", "nilai", core.ResolveKeyword},
		{"tie goes to earlier handler", "jadwal atau nilai", "jadwal", core.ResolveKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Handler.Name())
			assert.Equal(t, tt.wantMethod, res.Method)
			assert.Equal(t, tt.text, res.Text)
		})
	}
}

func TestResolver_Unresolvable(t *testing.T) {
	r := newTestResolver(t,
		stubHandler{name: "daftar"},
		stubHandler{name: "jadwal", keywords: []string{"jadwal", "kuliah"}},
		stubHandler{name: "nilai", keywords: []string{"nilai", "kuliah"}},
	)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no keyword", "halo apa kabar"},
		{"command word not first", "saya mau daftar"},
		{"keyword inside a word", "jadwalnya"},
		// "kuliah" is listed by every fallback handler and scores zero
		{"only zero weight keyword", "kuliah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrUnresolvable)
			assert.True(t, core.IsUserError(err))
		})
	}
}

func TestResolver_SingleFallbackNeverWins(t *testing.T) {
	r := newTestResolver(t,
		stubHandler{name: "daftar"},
		stubHandler{name: "status", keywords: []string{"status"}},
	)

	_, err := r.Resolve("status")
	assert.ErrorIs(t, err, core.ErrUnresolvable)
}

func TestResolver_Idempotent(t *testing.T) {
	r := newTestResolver(t, NewCommands(dialogueConfig{length: 8}, newMemAccounts())...)

	for _, text := range []string{"daftar", "cek status akun", "tolong", "hapus 12345678"} {
		first, err := r.Resolve(text)
		require.NoError(t, err)
		second, err := r.Resolve(text)
		require.NoError(t, err)
		assert.Equal(t, first.Handler.Name(), second.Handler.Name(), text)
		assert.Equal(t, first.Method, second.Method, text)
	}
}

func TestResolver_DefaultCommands(t *testing.T) {
	r := newTestResolver(t, NewCommands(dialogueConfig{length: 8}, newMemAccounts())...)

	tests := []struct {
		text string
		want string
	}{
		{"daftar", "daftar"},
		{"ganti", "ganti"},
		{"hapus", "hapus"},
		{"batal", "batal"},
		{"cek status akun saya", "status"},
		{"NPM saya apa?", "status"},
		{"tolong, bagaimana cara pakainya", "bantuan"},
		{"help", "bantuan"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res, err := r.Resolve(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Handler.Name())
		})
	}
}

func TestNewResolver_Errors(t *testing.T) {
	_, err := NewResolver([]core.Handler{stubHandler{name: "daftar"}, stubHandler{name: "daftar"}})
	assert.Error(t, err)

	_, err = NewResolver([]core.Handler{stubHandler{name: ""}})
	assert.Error(t, err)
}

func TestResolver_Lookup(t *testing.T) {
	r := newTestResolver(t, stubHandler{name: "daftar"}, stubHandler{name: "status", keywords: []string{"status"}})

	h, err := r.Lookup("status")
	require.NoError(t, err)
	assert.Equal(t, "status", h.Name())

	_, err = r.Lookup("gone")
	assert.ErrorIs(t, err, core.ErrUnknownCommand)
	assert.False(t, core.IsUserError(err))
}

func TestResolver_Exact(t *testing.T) {
	r := newTestResolver(t, stubHandler{name: "batal"}, stubHandler{name: "status", keywords: []string{"status"}})

	h, ok := r.Exact("batal sekarang")
	require.True(t, ok)
	assert.Equal(t, "batal", h.Name())

	_, ok = r.Exact("status")
	assert.False(t, ok, "fallback handlers are never matched by name")
}

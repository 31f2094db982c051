package line

import (
	"fmt"
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownReply struct{ core.Text }

func TestRender_Text(t *testing.T) {
	messages, err := Render(core.Text("**Akun berhasil dibuat**"))
	require.NoError(t, err)
	require.Len(t, messages, 1)

	text, ok := messages[0].(messaging_api.TextMessage)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Akun berhasil dibuat")
	assert.NotContains(t, text.Text, "**")
}

func TestRender_Buttons(t *testing.T) {
	messages, err := Render(core.Buttons{
		Prompt: "Perintah yang tersedia",
		Actions: []core.Button{
			{Label: "daftar", Text: "daftar"},
			{Label: "ganti NPM yang terhubung", Text: "ganti"},
		},
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)

	tmpl, ok := messages[0].(*messaging_api.TemplateMessage)
	require.True(t, ok)
	buttons, ok := tmpl.Template.(*messaging_api.ButtonsTemplate)
	require.True(t, ok)
	assert.Equal(t, "Perintah yang tersedia", buttons.Text)
	require.Len(t, buttons.Actions, 2)

	second := buttons.Actions[1].(*messaging_api.MessageAction)
	assert.Equal(t, "ganti", second.Text)
	assert.LessOrEqual(t, len([]rune(second.Label)), maxLabelLen)
}

func TestRender_ButtonsSplitAcrossTemplates(t *testing.T) {
	var actions []core.Button
	for i := 0; i < 6; i++ {
		actions = append(actions, core.Button{Label: fmt.Sprint(i), Text: fmt.Sprint(i)})
	}

	messages, err := Render(core.Buttons{Prompt: "Pilih", Actions: actions})
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestRender_Carousel(t *testing.T) {
	messages, err := Render(core.Carousel{"daftar", "ganti", "hapus"})
	require.NoError(t, err)
	require.Len(t, messages, 1)

	tmpl := messages[0].(*messaging_api.TemplateMessage)
	carousel, ok := tmpl.Template.(*messaging_api.CarouselTemplate)
	require.True(t, ok)
	require.Len(t, carousel.Columns, 3)

	action := carousel.Columns[2].Actions[0].(*messaging_api.MessageAction)
	assert.Equal(t, "hapus", action.Text)
}

func TestRender_Unsupported(t *testing.T) {
	_, err := Render(unknownReply{})
	assert.ErrorIs(t, err, core.ErrUnsupportedReply)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "daftar", truncate("daftar", maxLabelLen))

	long := strings.Repeat("á", 30)
	got := truncate(long, maxLabelLen)
	assert.Equal(t, maxLabelLen, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

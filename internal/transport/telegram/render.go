package telegram

import (
	"fmt"
	"strings"

	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/conv"
	tele "gopkg.in/telebot.v3"
)

const (
	callbackUnique = "utter"
	// Telegram caps callback data at 64 bytes including "\f<unique>|".
	maxCallbackData = 64 - len(callbackUnique) - 2

	carouselPrompt = "Pilih salah satu:"
)

type message struct {
	html   string
	markup *tele.ReplyMarkup
}

func renderReply(reply core.Reply) (message, error) {
	switch r := reply.(type) {
	case core.Text:
		return message{html: toHTML(string(r))}, nil
	case core.Buttons:
		menu := &tele.ReplyMarkup{}
		rows := make([]tele.Row, 0, len(r.Actions))
		for _, a := range r.Actions {
			rows = append(rows, menu.Row(menu.Data(a.Label, callbackUnique, callbackData(a.Text))))
		}
		menu.Inline(rows...)

		prompt := r.Prompt
		if prompt == "" {
			prompt = carouselPrompt
		}
		return message{html: toHTML(prompt), markup: menu}, nil
	case core.Carousel:
		menu := &tele.ReplyMarkup{}
		rows := make([]tele.Row, 0, len(r))
		for _, item := range r {
			rows = append(rows, menu.Row(menu.Data(item, callbackUnique, callbackData(item))))
		}
		menu.Inline(rows...)
		return message{html: carouselPrompt, markup: menu}, nil
	default:
		return message{}, fmt.Errorf("%w: %T", core.ErrUnsupportedReply, reply)
	}
}

func toHTML(md string) string {
	return strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
}

func callbackData(text string) string {
	if len(text) <= maxCallbackData {
		return text
	}
	return text[:maxCallbackData]
}

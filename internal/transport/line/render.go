package line

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sandevgo/asisten/internal/core"
	"github.com/sandevgo/asisten/pkg/conv"
)

// Messaging API limits.
const (
	maxTextLen         = 5000
	maxLabelLen        = 20
	maxButtonsText     = 160
	maxButtonsActions  = 4
	maxCarouselColumns = 10
	maxColumnText      = 120
	maxReplyMessages   = 5

	altText     = "Pilih salah satu"
	chooseText  = "Pilih salah satu:"
	columnTitle = "Perintah"
)

// Render converts a dialogue reply into Messaging API messages.
func Render(reply core.Reply) ([]messaging_api.MessageInterface, error) {
	switch r := reply.(type) {
	case core.Text:
		return []messaging_api.MessageInterface{textMessage(string(r))}, nil
	case core.Buttons:
		return renderButtons(r), nil
	case core.Carousel:
		return renderCarousel(r), nil
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnsupportedReply, reply)
	}
}

func textMessage(md string) messaging_api.TextMessage {
	return messaging_api.TextMessage{Text: truncate(conv.MarkdownToPlainText([]byte(md)), maxTextLen)}
}

func renderButtons(b core.Buttons) []messaging_api.MessageInterface {
	prompt := conv.MarkdownToPlainText([]byte(b.Prompt))
	if prompt == "" {
		prompt = chooseText
	}

	var messages []messaging_api.MessageInterface
	actions := b.Actions
	// Buttons template text is short; long prompts go out as plain text first.
	if utf8.RuneCountInString(prompt) > maxButtonsText {
		messages = append(messages, messaging_api.TextMessage{Text: truncate(prompt, maxTextLen)})
		prompt = chooseText
	}

	for len(actions) > 0 && len(messages) < maxReplyMessages {
		n := min(len(actions), maxButtonsActions)
		messages = append(messages, &messaging_api.TemplateMessage{
			AltText: truncate(prompt, 400),
			Template: &messaging_api.ButtonsTemplate{
				Text:    prompt,
				Actions: messageActions(actions[:n]),
			},
		})
		actions = actions[n:]
	}
	return messages
}

func renderCarousel(items core.Carousel) []messaging_api.MessageInterface {
	var messages []messaging_api.MessageInterface
	for len(items) > 0 && len(messages) < maxReplyMessages {
		n := min(len(items), maxCarouselColumns)
		columns := make([]messaging_api.CarouselColumn, 0, n)
		for _, item := range items[:n] {
			columns = append(columns, messaging_api.CarouselColumn{
				Title: columnTitle,
				Text:  truncate(item, maxColumnText),
				Actions: messageActions([]core.Button{
					{Label: item, Text: item},
				}),
			})
		}
		messages = append(messages, &messaging_api.TemplateMessage{
			AltText:  altText,
			Template: &messaging_api.CarouselTemplate{Columns: columns},
		})
		items = items[n:]
	}
	return messages
}

func messageActions(buttons []core.Button) []messaging_api.ActionInterface {
	actions := make([]messaging_api.ActionInterface, 0, len(buttons))
	for _, b := range buttons {
		actions = append(actions, &messaging_api.MessageAction{
			Label: truncate(b.Label, maxLabelLen),
			Text:  b.Text,
		})
	}
	return actions
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}

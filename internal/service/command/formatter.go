package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter builds the markdown snippets every command reply is made of.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("ℹ️ **%s**\n", title)
}

func (f *ResponseFormatter) Prompt(message string) string {
	return fmt.Sprintf("✏️ %s\n", message)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

func (f *ResponseFormatter) Failure(message string) string {
	return fmt.Sprintf("❌ **%s**\n", message)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Format**: `%s`\n", command)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	quoted := make([]string, 0, len(examples))
	for _, ex := range examples {
		quoted = append(quoted, fmt.Sprintf("`%s`", ex))
	}
	return "**Contoh**:\n" + f.List(quoted)
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("› %s\n", item))
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.TrimRight(strings.Join(sections, "\n"), "\n")
}

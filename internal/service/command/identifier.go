package command

import (
	"fmt"
	"strings"

	"github.com/sandevgo/asisten/internal/core"
)

const unresolvableMessage = "Maaf, perintah tidak dikenali. Ketik `bantuan` untuk melihat daftar perintah."

// IdentifierRule validates student numbers (NPM): a fixed count of ASCII digits.
type IdentifierRule struct {
	Length int
}

func NewIdentifierRule(length int) IdentifierRule {
	return IdentifierRule{Length: length}
}

func (r IdentifierRule) Validate(id string) error {
	if len(id) == r.Length && strings.IndexFunc(id, func(c rune) bool { return c < '0' || c > '9' }) == -1 {
		return nil
	}
	f := NewResponseFormatter()
	return core.NewUserError(core.ErrInvalidIdentifier, f.Combine(
		f.Failure("NPM yang anda masukkan salah"),
		f.Label("Format", r.Format()),
		f.Tip("Mohon masukkan NPM yang benar"),
	))
}

// Format describes the expected identifier shape to users.
func (r IdentifierRule) Format() string {
	return fmt.Sprintf("%d digit angka", r.Length)
}

// Example returns a valid sample identifier for help texts.
func (r IdentifierRule) Example() string {
	var sb strings.Builder
	for i := 0; i < r.Length; i++ {
		sb.WriteByte(byte('1' + i%9))
	}
	return sb.String()
}

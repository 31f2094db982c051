package command

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sandevgo/asisten/internal/core"
)

type keyword struct {
	word    string
	pattern *regexp.Regexp
}

type fallback struct {
	handler  core.Handler
	keywords []keyword
}

// Resolver selects the handler for an utterance. It is built once from the
// full handler set and is read-only afterwards.
type Resolver struct {
	handlers []core.Handler
	byName   map[string]core.Handler
	exact    []core.Handler
	fallback []fallback
	// number of fallback handlers listing each keyword
	frequency map[string]int
}

func NewResolver(handlers []core.Handler) (*Resolver, error) {
	r := &Resolver{
		byName:    make(map[string]core.Handler, len(handlers)),
		frequency: make(map[string]int),
	}

	for _, h := range handlers {
		name := h.Name()
		if name == "" {
			return nil, fmt.Errorf("handler %T has an empty name", h)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate handler name %q", name)
		}
		r.byName[name] = h
		r.handlers = append(r.handlers, h)

		words := normalizeKeywords(h.Keywords())
		if len(words) == 0 {
			r.exact = append(r.exact, h)
			continue
		}

		fb := fallback{handler: h}
		for _, w := range words {
			fb.keywords = append(fb.keywords, keyword{
				word:    w,
				pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`),
			})
			r.frequency[w]++
		}
		r.fallback = append(r.fallback, fb)
	}

	return r, nil
}

// Resolve picks exactly one handler: an exact handler whose name equals the
// first token, otherwise the best scoring fallback handler.
func (r *Resolver) Resolve(text string) (core.Resolution, error) {
	if h, ok := r.matchExact(text); ok {
		return core.Resolution{Handler: h, Text: text, Method: core.ResolveExact}, nil
	}

	h, ok := r.matchKeywords(text)
	if !ok {
		return core.Resolution{}, core.NewUserError(core.ErrUnresolvable, unresolvableMessage)
	}
	return core.Resolution{Handler: h, Text: text, Method: core.ResolveKeyword}, nil
}

// Lookup returns a registered handler by name. An unknown name means a stale
// or corrupt stored state and is reported as a server fault.
func (r *Resolver) Lookup(name string) (core.Handler, error) {
	h, ok := r.byName[name]
	if !ok {
		return nil, core.Faultf(core.ErrUnknownCommand, "%q", name)
	}
	return h, nil
}

// Exact returns the exact-match handler named by the first token of text.
func (r *Resolver) Exact(text string) (core.Handler, bool) {
	return r.matchExact(text)
}

func (r *Resolver) Handlers() []core.Handler {
	return r.handlers
}

func (r *Resolver) matchExact(text string) (core.Handler, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}
	for _, h := range r.exact {
		if h.Name() == fields[0] {
			return h, true
		}
	}
	return nil, false
}

func (r *Resolver) matchKeywords(text string) (core.Handler, bool) {
	if len(r.fallback) == 0 {
		return nil, false
	}

	total := float64(len(r.fallback))
	scores := make([]float64, len(r.fallback))
	matched := make([]bool, len(r.fallback))

	for i, fb := range r.fallback {
		for _, kw := range fb.keywords {
			if !kw.pattern.MatchString(text) {
				continue
			}
			matched[i] = true
			scores[i] += math.Log2(total / float64(r.frequency[kw.word]))
		}
	}

	best := -1
	for i := range r.fallback {
		if !matched[i] {
			continue
		}
		if best == -1 || scores[i] > scores[best] {
			best = i
		}
	}

	if best == -1 || scores[best] <= 0 {
		return nil, false
	}
	return r.fallback[best].handler, true
}

func normalizeKeywords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the pretty handler, keyed loosely by value kind.
//
//nolint:gochecknoglobals
var (
	styleKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleString  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleNumber  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleBool    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	styleMessage = lipgloss.NewStyle().Bold(true)

	styleLevel = map[slog.Level]lipgloss.Style{
		slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// prettyHandler is a colorized text handler for terminals.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

// Enabled implements [slog.Handler].
func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements [slog.Handler].
func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		buf.WriteString(styleKey.Render(r.Time.Format(DefaultTimeLayout)))
	}

	level := styleLevel[r.Level.Level()]
	h.writeField(buf, level.Render(strings.ToUpper(Level(r.Level).String())))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf,
				styleKey.Render(fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.writeField(buf, styleMessage.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// WithAttrs implements [slog.Handler].
func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

// WithGroup implements [slog.Handler].
func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &clone
}

func (h *prettyHandler) writeField(buf *bytes.Buffer, field string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(field)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	h.writeField(buf, styleKey.Render(key)+"=")
	buf.WriteString(h.renderValue(a.Value.Resolve()))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return styleString.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64,
		slog.KindDuration, slog.KindTime:
		return styleNumber.Render(v.String())

	case slog.KindBool:
		return styleBool.Render(v.String())

	default:
		return v.String()
	}
}

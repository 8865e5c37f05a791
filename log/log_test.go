package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_JSONFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf, WithLevel(LevelDebug))

	logger.Debug("hello", slog.String("k", "v"))

	out := buf.String()
	for _, want := range []string{`"msg":"hello"`, `"k":"v"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output %q", want, out)
		}
	}
}

func TestMake_LevelFilter(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf, WithLevel(LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("message below level must be discarded")
	}

	if !strings.Contains(out, "kept") {
		t.Error("message at level must be emitted")
	}
}

func TestMake_TextFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf, WithFormat(FormatText))

	logger.Info("hello")

	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text format, got %q", buf.String())
	}
}

func TestMake_PrettyFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf, WithFormat(FormatPretty))

	logger.Info("hello", slog.Int("n", 1))

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "n=") {
		t.Errorf("expected pretty output with message and attrs, got %q", out)
	}
}

func TestZeroValueLoggerDiscards(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Info("into the void")

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Error("zero-value logger must report defaults")
	}
}

func TestWrap_Overrides(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf, WithLevel(LevelError))

	logger = logger.Wrap(WithLevel(LevelDebug))

	logger.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("wrapped logger must honor overridden level")
	}
}

func TestWith_Attrs(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf).With(slog.String("component", "render"))

	logger.Info("hello")

	if !strings.Contains(buf.String(), `"component":"render"`) {
		t.Errorf("expected bound attribute, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug,
		"INFO":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"bogus": DefaultLevel,
		"":      DefaultLevel,
	}

	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":   FormatJSON,
		"text":   FormatText,
		"pretty": FormatPretty,
		"bogus":  FormatJSON,
	}

	for in, want := range cases {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	buf := new(bytes.Buffer)

	prev := Default()
	defer SetDefault(prev)

	SetDefault(Make(buf))
	Info("through the default")

	if !strings.Contains(buf.String(), "through the default") {
		t.Errorf("expected default logger output, got %q", buf.String())
	}
}

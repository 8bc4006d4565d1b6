package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestVerbosityFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer Verbosity(LvlWarn)

	Verbosity(LvlInfo)
	Debug("hidden", "k", 1)
	Info("shown", "k", 2)
	Warn("also shown")

	out := buf.String()
	be.True(t, !strings.Contains(out, "hidden"))
	be.True(t, strings.Contains(out, "msg=shown"))
	be.True(t, strings.Contains(out, "k=2"))
	be.True(t, strings.Contains(out, "level=info"))
	be.True(t, strings.Contains(out, "level=warn"))
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer Verbosity(LvlWarn)

	Verbosity(LvlTrace)
	Trace("deep")
	be.True(t, strings.Contains(buf.String(), "level=trce"))
}

func TestNewCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	l := New("pass", 2)
	l.Error("failed", "line", 7)
	out := buf.String()
	be.True(t, strings.Contains(out, "pass=2"))
	be.True(t, strings.Contains(out, "line=7"))
}

func TestVerbosityClamps(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer Verbosity(LvlWarn)

	Verbosity(Lvl(99))
	Trace("clamped to trace")
	be.True(t, strings.Contains(buf.String(), "clamped"))
}

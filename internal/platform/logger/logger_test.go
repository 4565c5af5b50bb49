package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, "error", Error.String())

	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatConsole, ParseFormat("Console"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "pet-registry", Writer: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"component": "pets"}).Info("pet created", map[string]any{"pet_id": 7, "": "skip"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "pet created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "pet-registry", entry["app"])
	assert.Equal(t, "pets", entry["component"])
	assert.EqualValues(t, 7, entry["pet_id"])
	assert.NotContains(t, entry, "")
}

func TestConsoleLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatConsole, Writer: &buf})

	l.With(map[string]any{"component": "store"}).Warn("slow query", map[string]any{"ms": 250})

	out := buf.String()
	assert.Contains(t, out, "WRN slow query")
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "ms=250")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing happens", map[string]any{"x": 1})
	assert.NotNil(t, l.With(map[string]any{"a": 1}))
}

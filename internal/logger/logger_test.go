package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

func TestDebug_SuppressedByDefault(t *testing.T) {
	buf := withBuffer(t)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestDebug_PrintedWhenVerbose(t *testing.T) {
	buf := withBuffer(t)
	SetVerbose(true)
	Debug("embedding took %dms", 42)
	assert.Equal(t, "[DEBUG] embedding took 42ms\n", buf.String())
}

func TestInfoWarnError_AlwaysPrinted(t *testing.T) {
	buf := withBuffer(t)
	Info("loaded %d documents", 3)
	Warn("document %s has no embedding", "doc-1")
	Error("query failed: %s", "boom")

	out := buf.String()
	assert.Contains(t, out, "[INFO] loaded 3 documents\n")
	assert.Contains(t, out, "[WARN] document doc-1 has no embedding\n")
	assert.Contains(t, out, "[ERROR] query failed: boom\n")
}

func TestIsVerbose(t *testing.T) {
	withBuffer(t)
	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}

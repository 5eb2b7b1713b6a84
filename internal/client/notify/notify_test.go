package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Success("Logged out successfully")
	c.Error("Failed to load user data")

	assert.Equal(t, "✓ Logged out successfully\n✗ Failed to load user data\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Info("a")
	r.Error("b")
	r.Error("c")
	r.Warning("d")
	r.Success("e")

	assert.Equal(t, 2, r.Count(LevelError))
	assert.Equal(t, Message{Level: LevelInfo, Text: "a"}, r.Messages()[0])
	assert.Len(t, r.Messages(), 5)
}

func TestInterfaces(t *testing.T) {
	var _ Notifier = (*Console)(nil)
	var _ Notifier = (*Recorder)(nil)
	var _ Notifier = Discard{}
}

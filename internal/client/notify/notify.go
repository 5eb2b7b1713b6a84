// Package notify delivers short user-facing messages, the terminal
// equivalent of toasts.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notifier interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// Console prints one line per message.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) write(l Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := map[Level]string{
		LevelInfo:    "i",
		LevelSuccess: "✓",
		LevelWarning: "!",
		LevelError:   "✗",
	}[l]
	_, _ = fmt.Fprintf(c.w, "%s %s\n", prefix, msg)
}

func (c *Console) Info(msg string)    { c.write(LevelInfo, msg) }
func (c *Console) Success(msg string) { c.write(LevelSuccess, msg) }
func (c *Console) Warning(msg string) { c.write(LevelWarning, msg) }
func (c *Console) Error(msg string)   { c.write(LevelError, msg) }

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every message; used by tests and by the shell to replay
// what happened during a command.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) add(l Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message{Level: l, Text: msg})
}

func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }
func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Warning(msg string) { r.add(LevelWarning, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Count returns how many messages of level l were recorded.
func (r *Recorder) Count(l Level) int {
	n := 0
	for _, m := range r.Messages() {
		if m.Level == l {
			n++
		}
	}
	return n
}

// Discard drops every message.
type Discard struct{}

func (Discard) Info(string)    {}
func (Discard) Success(string) {}
func (Discard) Warning(string) {}
func (Discard) Error(string)   {}

// Package toast carries transient user-facing notifications.
package toast

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Notifier interface {
	Success(message string)
	Error(message string)
}

// Log prints notifications through logrus; handy for headless runs.
type Log struct {
	Logger logrus.FieldLogger
}

func (l Log) Success(message string) { l.Logger.WithField("toast", "success").Info(message) }
func (l Log) Error(message string)   { l.Logger.WithField("toast", "error").Warn(message) }

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Kind Kind
	Text string
}

// Recorder keeps every notification in order.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Success(message string) { r.add(KindSuccess, message) }
func (r *Recorder) Error(message string)   { r.add(KindError, message) }

func (r *Recorder) add(kind Kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Kind: kind, Text: text})
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the latest notification, if any.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

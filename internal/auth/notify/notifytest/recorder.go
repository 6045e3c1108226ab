// Package notifytest provides an in-memory Notifier for tests.
package notifytest

import (
	"context"
	"regexp"
	"sync"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Recorder keeps every message it is asked to send. Set Err to make Send fail.
type Recorder struct {
	mu       sync.Mutex
	messages []Message

	Err error
}

func (r *Recorder) Send(_ context.Context, to, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, Message{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// SetErr swaps the failure injected into subsequent sends.
func (r *Recorder) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Err = err
}

var codeRe = regexp.MustCompile(`<b>(\d{6})</b>`)

// LastCode returns the most recent six digit code sent to the address.
func (r *Recorder) LastCode(to string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].To != to {
			continue
		}
		if m := codeRe.FindStringSubmatch(r.messages[i].Body); m != nil {
			return m[1], true
		}
	}
	return "", false
}

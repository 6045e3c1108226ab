package notify

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSMTP is a minimal plaintext relay that records one DATA payload per session.
type fakeSMTP struct {
	ln net.Listener

	mu       sync.Mutex
	from     string
	rcpt     string
	data     string
	received chan struct{}
}

func startFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTP{ln: ln, received: make(chan struct{}, 1)}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	write := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

	write("220 fake ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		upper := strings.ToUpper(cmd)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			write("250-fake")
			write("250 HELP")
		case strings.HasPrefix(upper, "MAIL FROM:"):
			s.mu.Lock()
			s.from = strings.Trim(cmd[len("MAIL FROM:"):], "<> ")
			s.mu.Unlock()
			write("250 OK")
		case strings.HasPrefix(upper, "RCPT TO:"):
			s.mu.Lock()
			s.rcpt = strings.Trim(cmd[len("RCPT TO:"):], "<> ")
			s.mu.Unlock()
			write("250 OK")
		case upper == "DATA":
			write("354 go ahead")
			var sb strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				sb.WriteString(l)
			}
			s.mu.Lock()
			s.data = sb.String()
			s.mu.Unlock()
			write("250 queued")
			s.received <- struct{}{}
		case upper == "QUIT":
			write("221 bye")
			return
		default:
			write("250 OK")
		}
	}
}

func TestSMTPNotifier_Send(t *testing.T) {
	srv := startFakeSMTP(t)

	n, err := NewSMTPNotifier(SMTPConfig{
		Host: "127.0.0.1",
		Port: srv.port(),
		From: "passgate <no-reply@example.com>",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, n.Send(ctx, "alice@example.com", "Account verification code", "<b>123456</b>"))

	select {
	case <-srv.received:
	case <-time.After(5 * time.Second):
		t.Fatal("message not received")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Equal(t, "no-reply@example.com", srv.from)
	require.Equal(t, "alice@example.com", srv.rcpt)
	require.Contains(t, srv.data, "Subject: Account verification code\r\n")
	require.Contains(t, srv.data, "Content-Type: text/html; charset=UTF-8")
	require.Contains(t, srv.data, "<b>123456</b>")
}

func TestSMTPNotifier_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	n, err := NewSMTPNotifier(SMTPConfig{Host: "127.0.0.1", Port: port, From: "no-reply@example.com"})
	require.NoError(t, err)

	err = n.Send(context.Background(), "alice@example.com", "s", "b")
	require.ErrorContains(t, err, "dial 127.0.0.1:"+strconv.Itoa(port))
}

func TestNewSMTPNotifier_Validation(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{From: "no-reply@example.com"})
	require.Error(t, err)

	_, err = NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", From: "not an address"})
	require.Error(t, err)
}

func TestBuildMessage_EncodesSubject(t *testing.T) {
	msg := string(buildMessage("a@example.com", "b@example.com", "Código de verificação", "<p>x</p>"))
	require.Contains(t, msg, "Subject: =?utf-8?q?")
	require.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>x</p>"))
}

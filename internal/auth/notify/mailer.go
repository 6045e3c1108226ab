package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"
)

// Mailer renders the fixed account messages and hands them to a Notifier.
type Mailer struct {
	Notifier Notifier
	AppName  string
}

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(
		`<h2>Welcome to {{.App}}</h2><p>Hi {{.Name}}, your account has been created with the email <b>{{.Email}}</b>.</p>`))

	verifyTmpl = template.Must(template.New("verify").Parse(
		`<h2>Verify your email</h2><p>Your verification code is <b>{{.Code}}</b>.</p><p>It expires in {{.TTL}}.</p>`))

	resetTmpl = template.Must(template.New("reset").Parse(
		`<h2>Reset your password</h2><p>Your password reset code is <b>{{.Code}}</b>.</p><p>It expires in {{.TTL}}. If you did not ask for this, ignore this email.</p>`))
)

type mailData struct {
	App   string
	Name  string
	Email string
	Code  string
	TTL   string
}

func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Welcome to "+m.app(), welcomeTmpl, mailData{App: m.app(), Name: name, Email: to})
}

func (m *Mailer) SendVerifyOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	return m.send(ctx, to, "Account verification code", verifyTmpl, mailData{Code: code, TTL: humanTTL(ttl)})
}

func (m *Mailer) SendResetOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	return m.send(ctx, to, "Password reset code", resetTmpl, mailData{Code: code, TTL: humanTTL(ttl)})
}

func (m *Mailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data mailData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("notify: render %s: %w", tmpl.Name(), err)
	}
	return m.Notifier.Send(ctx, to, subject, body.String())
}

func (m *Mailer) app() string {
	if m.AppName == "" {
		return "passgate"
	}
	return m.AppName
}

func humanTTL(d time.Duration) string {
	if d%time.Minute == 0 && d >= time.Minute {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", n)
	}
	return d.String()
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"

	"server/internal/domain"
)

// Notifier delivers an informational message about a record's final
// state. Delivery is best-effort: callers log failures and move on.
type Notifier interface {
	Notify(ctx context.Context, rec *domain.PortraitRequest) error
}

// SMTPMailerOptions configures the administrative mail channel.
type SMTPMailerOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer emails the administrator a summary of a portrait request.
type SMTPMailer struct {
	opts SMTPMailerOptions
}

func NewSMTPMailer(opts SMTPMailerOptions) *SMTPMailer {
	return &SMTPMailer{opts: opts}
}

var bodyTemplate = template.Must(template.New("notification").Parse(`<h1>New Ghibli Portrait Request</h1>
<p><strong>Instagram ID:</strong> {{.InstagramHandle}}</p>
<p><strong>Status:</strong> {{.Status}}</p>
<p><strong>Created At:</strong> {{.CreatedAt}}</p>
<p><strong>Result:</strong> {{if .ResultImageURL}}<a href="{{.ResultImageURL}}">View Generated Image</a>{{else}}Not available yet{{end}}</p>
{{if .Error}}<p><strong>Error:</strong> {{.Error}}</p>
{{end}}<p><strong>Original Images:</strong></p>
<ul>
{{range .SourceImageURLs}}  <li><a href="{{.}}">Image</a></li>
{{end}}</ul>
`))

// Notify sends a single email describing the record. The caller decides
// what a failure means; this type only reports it.
func (m *SMTPMailer) Notify(ctx context.Context, rec *domain.PortraitRequest) error {
	if m == nil || m.opts.Host == "" || m.opts.To == "" {
		return errors.New("notify: smtp transport not configured")
	}
	if rec == nil {
		return errors.New("notify: record required")
	}

	msg := mail.NewMsg()
	if err := msg.From(m.opts.From); err != nil {
		return fmt.Errorf("notify: sender address: %w", err)
	}
	if err := msg.To(m.opts.To); err != nil {
		return fmt.Errorf("notify: recipient address: %w", err)
	}
	msg.Subject(Subject(rec))
	msg.SetBodyString(mail.TypeTextHTML, Body(rec))

	client, err := mail.NewClient(m.opts.Host,
		mail.WithPort(m.opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.opts.Username),
		mail.WithPassword(m.opts.Password),
	)
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}

// Subject builds the notification subject line for a record.
func Subject(rec *domain.PortraitRequest) string {
	return "New Ghibli Portrait Request: " + rec.InstagramHandle
}

// Body renders the HTML notification body for a record.
func Body(rec *domain.PortraitRequest) string {
	var b strings.Builder
	if err := bodyTemplate.Execute(&b, rec); err != nil {
		return ""
	}
	return b.String()
}

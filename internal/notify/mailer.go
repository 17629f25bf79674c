package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	html "github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Message is a rendered notification handed to a Transport.
type Message struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Template string    `json:"template"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

type Transport interface {
	Deliver(ctx context.Context, m Message) error
}

// Mailer renders a template into a Message and hands it to its Transport.
type Mailer struct {
	views *html.Engine
	tr    Transport
}

func NewMailer(tr Transport) (*Mailer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load mail templates: %w", err)
	}
	return &Mailer{views: engine, tr: tr}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, template string, data map[string]any) error {
	var buf bytes.Buffer
	if err := m.views.Render(&buf, template, data); err != nil {
		return fmt.Errorf("render %s: %w", template, err)
	}
	return m.tr.Deliver(ctx, Message{
		To:       to,
		Subject:  subject,
		Template: template,
		Body:     buf.String(),
		SentAt:   time.Now().UTC(),
	})
}

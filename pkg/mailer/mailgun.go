package mailer

import (
	"context"
	"html"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun holds the credentials for outbound mail.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send delivers a single message. html is optional; when set it
// becomes the HTML body alongside the plain-text one.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, htmlBody string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if htmlBody != "" {
		msg.SetHtml(htmlBody)
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// SendNewPost formats and delivers the new-post notification. The post
// title is user input and gets escaped before it lands in the HTML
// body.
func (m *Mailgun) SendNewPost(ctx context.Context, to string, job NewPostJob) error {
	text := "A new post was published: " + job.Title
	htmlBody := "There is a <strong>new post</strong> on the site: " + html.EscapeString(job.Title)
	return m.Send(ctx, to, "New post on the site", text, htmlBody)
}

// Package mailer delivers receipt emails over SMTP. Messages carry a plain
// text and an HTML part as multipart/alternative.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/martinezcrafts/shopdesk-backend/pkg/config"
	"go.uber.org/multierr"
)

type Client struct {
	cfg  config.SMTPConfig
	send sendFunc
}

// sendFunc is swapped in tests; production uses smtp.SendMail.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

func New(cfg config.SMTPConfig) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &Client{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers the receipt to the customer and, separately, to each
// configured BCC recipient. Failures are aggregated; any failure makes the
// whole send count as failed.
func (c *Client) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("recipient address is required")
	}

	msg, err := buildMessage(c.cfg.From, to, subject, textBody, htmlBody)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	var errs error
	recipients := append([]string{to}, c.cfg.BCC...)
	for _, rcpt := range recipients {
		if err := c.send(addr, auth, c.cfg.From, []string{rcpt}, msg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sending to %s: %w", rcpt, err))
		}
	}
	return errs
}

func buildMessage(from, to, subject, textBody, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(textBody)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

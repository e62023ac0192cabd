package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Message is a fully rendered email ready for dispatch.
type Message struct {
	To       string
	From     string
	Subject  string
	HTMLBody string
	TextBody string
}

// Notifier is the delivery boundary. Implementations report failures back as
// errors; they never swallow them.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig selects between a plain relay (e.g. a local mailhog) and an
// authenticated mail service.
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	Authenticated bool
}

// SMTPNotifier delivers mail over SMTP using wneessen/go-mail.
type SMTPNotifier struct {
	client *gomail.Client
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Authenticated {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
			gomail.WithTLSPolicy(gomail.TLSMandatory),
		)
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPNotifier{client: client, from: cfg.From}, nil
}

func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()

	from := msg.From
	if from == "" {
		from = n.from
	}
	if err := m.From(from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

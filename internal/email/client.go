package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Client sends mail through an authenticated SMTP relay.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
	inbox     string
	logger    *zap.Logger

	// send delivers a built message; tests swap it out.
	send func(ctx context.Context, m *mail.Msg) error
}

// NewClient creates a client. inbox receives contact notifications.
func NewClient(host, portStr, user, password, fromName, fromEmail, inbox string, logger *zap.Logger) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
		inbox:     inbox,
		logger:    logger,
	}
	c.send = c.dialAndSend
	return c, nil
}

// SendEmail sends an HTML message to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m, err := c.message(to, subject, htmlBody)
	if err != nil {
		return err
	}
	return c.send(ctx, m)
}

func (c *Client) message(to, subject, htmlBody string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)
	return m, nil
}

func (c *Client) dialAndSend(ctx context.Context, m *mail.Msg) error {
	c.logger.Debug("smtp connect", zap.String("host", c.host), zap.Int("port", c.port), zap.String("user", c.user))

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	// Never include credentials in the error.
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending mail (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}
	return nil
}

// SendContactNotification forwards a contact form inquiry to the studio inbox.
// Replying to the message goes straight to the sender.
func (c *Client) SendContactNotification(ctx context.Context, id int, inquiry domain.ContactInquiry) error {
	subject := fmt.Sprintf("New inquiry #%d from %s", id, inquiry.Name)
	m, err := c.message(c.inbox, subject, contactHTML(id, inquiry, time.Now()))
	if err != nil {
		return err
	}
	if err := m.ReplyTo(inquiry.Email); err != nil {
		return fmt.Errorf("setting reply-to: %w", err)
	}
	return c.send(ctx, m)
}

func contactHTML(id int, in domain.ContactInquiry, received time.Time) string {
	rows := ""
	for _, f := range [][2]string{
		{"Name", in.Name},
		{"Email", in.Email},
		{"Company", in.Company},
		{"Budget", in.Budget},
	} {
		if f[1] == "" {
			continue
		}
		rows += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px 0;"><strong>%s:</strong></td>
				<td style="padding: 8px 0; text-align: right;">%s</td>
			</tr>`, f[0], html.EscapeString(f[1]))
	}
	message := strings.ReplaceAll(html.EscapeString(in.Message), "\n", "<br>")

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>New inquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden;">
					<tr>
						<td style="background-color: #111111; padding: 32px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 24px;">Inquiry #%d</h1>
							<p style="color: #cccccc; margin: 8px 0 0 0; font-size: 14px;">Received %s</p>
						</td>
					</tr>
					<tr>
						<td style="padding: 32px 30px;">
							<table width="100%%" cellpadding="0" cellspacing="0">%s
							</table>
							<div style="margin-top: 24px; padding: 20px; background-color: #f8f9fa; border-left: 4px solid #111111;">
								%s
							</div>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
`, id, received.Format("02 Jan 2006 15:04"), rows, message)
}

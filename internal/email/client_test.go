package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func newTestClient(t *testing.T) (*Client, *[]*mail.Msg) {
	t.Helper()
	c, err := NewClient("smtp.test", "587", "bot", "pw", "Moraleja", "bot@moraleja.test", "studio@moraleja.test", nil)
	require.NoError(t, err)
	var sent []*mail.Msg
	c.send = func(_ context.Context, m *mail.Msg) error {
		sent = append(sent, m)
		return nil
	}
	return c, &sent
}

func TestNewClientRejectsBadPort(t *testing.T) {
	_, err := NewClient("smtp.test", "smtp", "", "", "", "", "", nil)
	assert.Error(t, err)
}

func TestSendContactNotification(t *testing.T) {
	c, sent := newTestClient(t)
	inquiry := domain.ContactInquiry{Name: "Ana", Email: "ana@example.com", Message: "Hello"}

	require.NoError(t, c.SendContactNotification(context.Background(), 7, inquiry))
	require.Len(t, *sent, 1)

	m := (*sent)[0]
	assert.Equal(t, []string{"New inquiry #7 from Ana"}, m.GetGenHeader(mail.HeaderSubject))
	rcpts, err := m.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"studio@moraleja.test"}, rcpts)
}

func TestSendEmailRejectsBadRecipient(t *testing.T) {
	c, sent := newTestClient(t)
	assert.Error(t, c.SendEmail(context.Background(), "not an address", "hi", "<p>hi</p>"))
	assert.Empty(t, *sent)
}

func TestSendEmailPropagatesTransportError(t *testing.T) {
	c, _ := newTestClient(t)
	c.send = func(context.Context, *mail.Msg) error { return errors.New("connection refused") }
	assert.ErrorContains(t, c.SendEmail(context.Background(), "a@b.co", "hi", "<p>hi</p>"), "connection refused")
}

func TestContactHTMLEscapesInput(t *testing.T) {
	html := contactHTML(3, domain.ContactInquiry{
		Name:    "<script>x</script>",
		Email:   "a@b.co",
		Message: "line one\nline two",
	}, time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC))

	assert.Contains(t, html, "Inquiry #3")
	assert.Contains(t, html, "02 Jan 2025 15:04")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "line one<br>line two")
	assert.NotContains(t, html, "Company:")
}

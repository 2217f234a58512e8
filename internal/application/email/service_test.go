package email

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func TestSend_Success(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendEmail", "buyer@example.com", "Order confirmed", "<p>Thanks!</p>").Return(nil)

	svc := NewService(mailer, true)
	err := svc.Send(context.Background(), SendRequest{
		To:      "buyer@example.com",
		Subject: "Order confirmed",
		HTML:    "<p>Thanks!</p>",
	})

	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestSend_NotConfigured(t *testing.T) {
	svc := NewService(nil, false)

	err := svc.Send(context.Background(), SendRequest{
		To:      "buyer@example.com",
		Subject: "Order confirmed",
		HTML:    "<p>Thanks!</p>",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
}

func TestSend_MailerFailure(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: timeout"))

	svc := NewService(mailer, true)
	err := svc.Send(context.Background(), SendRequest{
		To:      "buyer@example.com",
		Subject: "Order confirmed",
		HTML:    "<p>Thanks!</p>",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
}

package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailClient interface {
	SendWelcome(ctx context.Context, toEmail, toName string) error
}

type emailClient struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailClient(apiKey, fromEmail, fromName string) EmailClient {
	return &emailClient{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendWelcome greets a user after their first identity-provider sign-in.
func (e *emailClient) SendWelcome(ctx context.Context, toEmail, toName string) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	subject := "Welcome to the store"
	plain := fmt.Sprintf("Hi %s, your account is ready. Happy shopping!", toName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Happy shopping!</p>", toName)

	message := mail.NewSingleEmail(from, subject, to, plain, html)

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendgridEmailService delivers lifecycle emails through the SendGrid API.
type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendgridEmailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *sendgridEmailService) SendRequestSubmitted(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error {
	subject := fmt.Sprintf("New Borrow Request: %s", itemName)
	plain := fmt.Sprintf("%s has requested %d x %s.", studentName, quantity, itemName)
	html := fmt.Sprintf(`<html><body>
		<h2>New Borrow Request</h2>
		<p><strong>%s</strong> has requested <strong>%d x %s</strong>.</p>
		<p>Review the request from the admin dashboard.</p>
	</body></html>`, studentName, quantity, itemName)
	return s.send(ctx, adminEmail, subject, plain, html)
}

func (s *sendgridEmailService) SendRequestApproved(ctx context.Context, studentEmail, itemName string, quantity int, dueDate string) error {
	subject := fmt.Sprintf("Request Approved: %s", itemName)
	plain := fmt.Sprintf("Your request for %d x %s has been approved. Due back by %s.", quantity, itemName, dueDate)
	html := fmt.Sprintf(`<html><body>
		<h2>Request Approved</h2>
		<p>Your request for <strong>%d x %s</strong> has been approved.</p>
		<p>Please return the equipment by <strong>%s</strong>.</p>
	</body></html>`, quantity, itemName, dueDate)
	return s.send(ctx, studentEmail, subject, plain, html)
}

func (s *sendgridEmailService) SendRequestRejected(ctx context.Context, studentEmail, itemName string) error {
	subject := fmt.Sprintf("Request Rejected: %s", itemName)
	plain := fmt.Sprintf("Your request for %s has been rejected.", itemName)
	html := fmt.Sprintf(`<html><body>
		<h2>Request Rejected</h2>
		<p>Your request for <strong>%s</strong> has been rejected.</p>
		<p>Contact the lab administrator for details.</p>
	</body></html>`, itemName)
	return s.send(ctx, studentEmail, subject, plain, html)
}

func (s *sendgridEmailService) SendRequestReturned(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error {
	subject := fmt.Sprintf("Equipment Returned: %s", itemName)
	plain := fmt.Sprintf("%s has returned %d x %s.", studentName, quantity, itemName)
	html := fmt.Sprintf(`<html><body>
		<h2>Equipment Returned</h2>
		<p><strong>%s</strong> has returned <strong>%d x %s</strong>.</p>
	</body></html>`, studentName, quantity, itemName)
	return s.send(ctx, adminEmail, subject, plain, html)
}

func (s *sendgridEmailService) send(ctx context.Context, to, subject, plain, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	response, err := sendgrid.NewSendClient(s.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// noopEmailService is wired when no SendGrid key is configured, so local
// runs and tests skip delivery without branching in the services.
type noopEmailService struct{}

func NewNoopEmailService() EmailService { return noopEmailService{} }

func (noopEmailService) SendRequestSubmitted(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error {
	return nil
}

func (noopEmailService) SendRequestApproved(ctx context.Context, studentEmail, itemName string, quantity int, dueDate string) error {
	return nil
}

func (noopEmailService) SendRequestRejected(ctx context.Context, studentEmail, itemName string) error {
	return nil
}

func (noopEmailService) SendRequestReturned(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error {
	return nil
}

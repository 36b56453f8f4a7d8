package services

import (
	"fmt"

	"github.com/qanoot-iftekhar/mywebsite/models"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email channel. Delivery is fire-and-forget
// for order emails; OTP requests surface send errors to the caller.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

var Mail Mailer

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func InitializeMailer(host string, port int, user, password, from string) {
	Mail = &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendOTPEmail delivers a login code.
func SendOTPEmail(email, code string) error {
	subject := "Your Login OTP - Footwear Store"
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>Your One-Time Password (OTP) for logging into Footwear Store is:</p>
		<h2>%s</h2>
		<p>This OTP is valid for 5 minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
		<p>Best regards,<br>Footwear Store Team</p>`, code)
	return Mail.Send(email, subject, body)
}

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(email, firstName string) error {
	subject := "Welcome to Footwear Store!"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to Footwear Store. Your account is ready.</p>
		<p>Happy shopping!</p>`, firstName)
	return Mail.Send(email, subject, body)
}

// SendOrderConfirmationEmail confirms a placed order.
func SendOrderConfirmationEmail(order *models.Order) error {
	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderNumber)

	items := ""
	for _, item := range order.Items {
		items += fmt.Sprintf("<li>%d x %s (size %s, %s) - %.2f</li>",
			item.Quantity, item.ProductName, item.Size, item.Color, item.Price*float64(item.Quantity))
	}

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thank you for your order <strong>%s</strong>.</p>
		<ul>%s</ul>
		<p>Total: <strong>%.2f</strong></p>
		<p>We will let you know when it ships.</p>`,
		order.FullName, order.OrderNumber, items, order.TotalAmount)
	return Mail.Send(order.Email, subject, body)
}

// SendOrderStatusEmail notifies about a status change.
func SendOrderStatusEmail(order *models.Order, newStatus string) error {
	subject := fmt.Sprintf("Order %s - %s", newStatus, order.OrderNumber)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your order <strong>%s</strong> is now <strong>%s</strong>.</p>`,
		order.FullName, order.OrderNumber, newStatus)
	return Mail.Send(order.Email, subject, body)
}

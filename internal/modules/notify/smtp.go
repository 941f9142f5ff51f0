package notify

import (
	"fmt"
	"net/smtp"
)

type smtpNotifier struct {
	addr string
	from string
}

// NewSMTPNotifier creates a notifier delivering plain-text email over SMTP.
func NewSMTPNotifier(host, port, from string) Notifier {
	return &smtpNotifier{addr: host + ":" + port, from: from}
}

func (n *smtpNotifier) ConfirmationEmail(to, token string) error {
	body := fmt.Sprintf("Your email confirmation token: %s", token)
	return n.send(to, "Confirm your registration", body)
}

func (n *smtpNotifier) OrderPlaced(to string) error {
	return n.send(to, "Order status update", "Your order has been formed")
}

func (n *smtpNotifier) send(to, subject, body string) error {
	msg := "From: " + n.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body
	return smtp.SendMail(n.addr, nil, n.from, []string{to}, []byte(msg))
}

package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Sender delivers signup OTP codes. Handlers depend on this interface so tests
// never touch SMTP.
type Sender interface {
	SendOTP(email, otp string) error
}

// SMTPSender sends OTP mail through a plain SMTP relay.
type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host: host,
		Port: port,
		User: user,
		Pass: pass,
		From: fmt.Sprintf("Luxoro Store <%s>", user),
	}
}

func (s *SMTPSender) SendOTP(email, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your OTP for Luxoro Signup")
	m.SetBody("text/plain", fmt.Sprintf("Your OTP code is %s. It expires in 10 minutes.", otp))
	m.AddAlternative("text/html", fmt.Sprintf("<b>Your OTP code is %s</b>. It expires in 10 minutes.", otp))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("[MAIL] [ERROR] otp send failed:", err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	log.Println("[MAIL] [INFO] otp sent to:", email)
	return nil
}

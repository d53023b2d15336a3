package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
)

// Sender delivers HTML mail over implicit-TLS SMTP (port 465 style).
type Sender struct {
	smtpHost string
	smtpPort string
	username string
	password string
}

func NewSender(host, port, user, pass string) *Sender {
	return &Sender{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
	}
}

const verificationTpl = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Verify your email</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #fff; padding: 20px; border-radius: 8px;">
    <h2 style="color: #2E86C1;">Welcome to SolarMarket</h2>
    <p>Hello,</p>
    <p>Please confirm your email address by clicking the link below:</p>
    <p><a href="{{.VerifyURL}}">Verify my email</a></p>
    <p>If you did not create an account, you can ignore this message.</p>
    <br>
    <p>Regards,<br><strong>SolarMarket Team</strong></p>
  </div>
</body>
</html>
`

type verificationData struct {
	VerifyURL string
}

// SendVerification renders and sends the verification mail for the link.
func (s *Sender) SendVerification(to, verifyURL string) error {
	tmpl, err := template.New("verification").Parse(verificationTpl)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, verificationData{VerifyURL: verifyURL}); err != nil {
		return err
	}

	return s.Send(to, "Verify your SolarMarket account", body.String())
}

// Send delivers a single HTML message.
func (s *Sender) Send(to, subject, body string) error {
	from := s.username
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := s.smtpHost + ":" + s.smtpPort

	tlsConfig := &tls.Config{
		ServerName: s.smtpHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.username, s.password, s.smtpHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(msg); err != nil {
		return err
	}
	return writer.Close()
}

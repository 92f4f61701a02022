package utils

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/secureshare/secureshare/config"
)

// SendVerificationEmail delivers the signup verification link. When SMTP is
// not configured the mail degrades to a log line so signup keeps working in
// development environments.
func SendVerificationEmail(to, verificationURL string) error {
	cfg := config.Get()
	if cfg.SMTPServer == "" || cfg.FromEmail == "" {
		Sugar.Infow("smtp not configured, logging verification link instead",
			"to", to, "url", verificationURL)
		return nil
	}

	body := fmt.Sprintf("Hi,\r\nPlease verify your email by clicking the link below:\r\n%s\r\n", verificationURL)
	return sendMail(cfg, to, "Verify your email", body)
}

// sendMail sends a plain text email using SMTP settings from config,
// upgrading to STARTTLS when the server supports it.
func sendMail(cfg config.AppConfig, to, subject, body string) error {
	addr := net.JoinHostPort(cfg.SMTPServer, strconv.Itoa(cfg.SMTPPort))
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPServer)

	headers := []string{
		"From: " + cfg.FromEmail,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	var msg strings.Builder
	msg.WriteString(strings.Join(headers, "\r\n"))
	msg.WriteString("\r\n\r\n")
	msg.WriteString(body)

	d := net.Dialer{Timeout: 5 * time.Second}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, cfg.SMTPServer)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: cfg.SMTPServer}); err != nil {
			return err
		}
	}
	if cfg.SMTPUsername != "" {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(cfg.FromEmail); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write([]byte(msg.String())); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

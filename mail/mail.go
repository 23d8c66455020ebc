package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Notifier sends a short operational mail to the service admin.
type Notifier = func(subject string, text string) error

type Config struct {
	Host    string
	Port    int
	From    string
	AdminTo string
}

// SmtpNotifier sends over plain smtp without auth, matching the in-cluster
// relay this service is deployed next to.
func SmtpNotifier(config Config) Notifier {
	return func(subject string, text string) error {
		addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
		message := strings.Join([]string{
			"From: " + config.From,
			"To: " + config.AdminTo,
			"Subject: " + subject,
			"",
			text,
		}, "\r\n")

		err := smtp.SendMail(addr, nil, config.From, []string{config.AdminTo}, []byte(message))
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	}
}

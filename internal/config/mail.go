package config

import "strings"

// MailConfig configures outgoing notification email.  Mail is only sent
// when Host is set; otherwise notifications are just written to the log.
type MailConfig struct {
	Host       string
	Port       string
	User       string
	Pass       string
	From       string
	AdminEmail string // receives contact/order notifications
	LogDir     string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		Host:       envStr("SMTP_HOST", ""),
		Port:       envStr("SMTP_PORT", "587"),
		User:       envStr("SMTP_USER", ""),
		Pass:       envStr("SMTP_PASS", ""),
		From:       envStr("MAIL_FROM", "Healthy Corner <hello@healthycorner.local>"),
		AdminEmail: strings.TrimSpace(envStr("NOTIFY_EMAIL", "")),
		LogDir:     envStr("NOTIFY_LOG_DIR", "logs"),
	}
}

// Enabled reports whether an SMTP relay is configured.
func (m MailConfig) Enabled() bool { return m.Host != "" }

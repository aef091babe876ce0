package notify

import (
	"errors"
	"mime"
	"net/smtp"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthycorner/site-api/internal/config"
)

func TestNewSMTPMailerDisabled(t *testing.T) {
	assert.Nil(t, NewSMTPMailer(config.MailConfig{}))
}

func TestSMTPMailerSend(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: "2525", User: "u", Pass: "p", From: "Healthy Corner <hello@example.com>"})
	require.NotNil(t, m)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}
	require.NoError(t, m.Send(Mail{To: "ana@example.com", Subject: "Hello", Body: "line1\nline2"}))

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "hello@example.com", gotFrom)
	assert.Equal(t, []string{"ana@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	assert.Contains(t, string(gotMsg), "line1\r\nline2")
}

func TestSMTPMailerErrors(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "h", Port: "25", From: "a@b.c"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	assert.ErrorContains(t, m.Send(Mail{To: "x@y.z", Subject: "s"}), "refused")
	assert.Error(t, m.Send(Mail{To: "x@y.z\r\nBcc: evil@y.z", Subject: "s"}))
}

func TestBuildEncodesUTF8Subject(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "h", Port: "25", From: "a@b.c"})
	msg := string(m.Build(Mail{To: "x@y.z", Subject: "Nova rezervacija: Žiga Čeh", Body: "Živjo"}))

	subject := regexp.MustCompile(`Subject: (.*)\r\n`).FindStringSubmatch(msg)
	require.Len(t, subject, 2)
	assert.Contains(t, subject[1], "=?utf-8?q?")
	assert.NotContains(t, subject[1], "Ž")

	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[1])
	require.NoError(t, err)
	assert.Equal(t, "Nova rezervacija: Žiga Čeh", decoded)
	assert.Contains(t, msg, "\r\n\r\nŽivjo")
}

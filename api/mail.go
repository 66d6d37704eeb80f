package main

import (
	"bytes"
	"html/template"

	"github.com/go-mail/mail/v2"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
{{define "subject"}}Welcome to your to-do list{{end}}

{{define "plainBody"}}Hi {{.Username}},

Your account was created successfully. Sign in any time to manage your list.
{{end}}

{{define "htmlBody"}}<p>Hi {{.Username}},</p>
<p>Your account was created successfully. Sign in any time to manage your list.</p>
{{end}}
`))

type mailer struct {
	dialer *mail.Dialer
	sender string
}

func newMailer(host string, port int, username string, password string, sender string) *mailer {
	dialer := mail.NewDialer(host, port, username, password)
	return &mailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m *mailer) sendWelcome(u *user) error {
	return m.send(u.Username, welcomeTemplate, u)
}

func (m *mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	err := tmpl.ExecuteTemplate(&subject, "subject", data)
	if err != nil {
		return err
	}
	var plainBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&plainBody, "plainBody", data)
	if err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}

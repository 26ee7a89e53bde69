package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var registerTmpl = template.Must(template.New("register").Parse(`
<p>Hi {{.Name}},</p>
<p>Welcome! Please verify your email address by clicking the link below.</p>
<p><a href="{{.VerificationURL}}">Verify your email</a></p>
<p>The link expires at {{.Expires}}.</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>Your password reset code is <strong>{{.Code}}</strong>.</p>
<p>The code expires at {{.Expires}}.</p>
<p>If you did not request a reset you can ignore this email.</p>
`))

// RegisterEmailBody renders the verification email sent on signup.
func RegisterEmailBody(name, verificationURL string, expires time.Time) (string, error) {
	var buf bytes.Buffer
	err := registerTmpl.Execute(&buf, map[string]string{
		"Name":            name,
		"VerificationURL": verificationURL,
		"Expires":         expires.Format(time.RFC1123),
	})
	if err != nil {
		return "", fmt.Errorf("render register email: %w", err)
	}
	return buf.String(), nil
}

// ResetEmailBody renders the password reset email.
func ResetEmailBody(name, code string, expires time.Time) (string, error) {
	var buf bytes.Buffer
	err := resetTmpl.Execute(&buf, map[string]string{
		"Name":    name,
		"Code":    code,
		"Expires": expires.Format(time.RFC1123),
	})
	if err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return buf.String(), nil
}

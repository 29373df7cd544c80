package mail

import (
	"fmt"
	"html/template"
	"strings"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "layout_top"}}
<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Helvetica,Arial,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px;">
      <table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
        <tr><td style="font-size:20px;font-weight:bold;color:#222;padding-bottom:16px;">{{.AppName}}</td></tr>
{{end}}

{{define "layout_bottom"}}
        <tr><td style="font-size:12px;color:#999;padding-top:24px;">
          If you did not request this email, you can safely ignore it.
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
{{end}}

{{define "verification"}}
{{template "layout_top" .}}
        <tr><td style="font-size:15px;color:#444;line-height:1.5;">
          <p>Welcome! Use the code below to verify your email address.</p>
          <p style="font-size:28px;font-weight:bold;letter-spacing:6px;color:#222;text-align:center;padding:16px 0;">{{.Code}}</p>
          <p>The code expires in 24 hours.</p>
        </td></tr>
{{template "layout_bottom" .}}
{{end}}

{{define "password_reset"}}
{{template "layout_top" .}}
        <tr><td style="font-size:15px;color:#444;line-height:1.5;">
          <p>We received a request to reset the password for your account.</p>
          <p style="text-align:center;padding:16px 0;">
            <a href="{{.ResetURL}}" style="background:#2563eb;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;display:inline-block;">Reset password</a>
          </p>
          <p>The link expires in 1 hour. If the button does not work, copy this URL into your browser:</p>
          <p style="word-break:break-all;color:#2563eb;">{{.ResetURL}}</p>
        </td></tr>
{{template "layout_bottom" .}}
{{end}}

{{define "password_reset_success"}}
{{template "layout_top" .}}
        <tr><td style="font-size:15px;color:#444;line-height:1.5;">
          <p>The password for your account was just changed.</p>
          <p>If this was you, no further action is needed. If you did not change your password, contact support immediately.</p>
        </td></tr>
{{template "layout_bottom" .}}
{{end}}
`))

type templateData struct {
	AppName  string
	Code     string
	ResetURL string
}

func renderTemplate(name string, data templateData) (string, error) {
	var sb strings.Builder
	if err := emailTemplates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

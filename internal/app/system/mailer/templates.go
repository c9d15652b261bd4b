// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// PasswordResetData fills the password-reset e-mail.
type PasswordResetData struct {
	SiteName  string
	Name      string
	ResetLink string
	ExpiresIn string // e.g. "1 hora"
}

var resetTmpl = template.Must(template.New("reset").Parse(resetHTMLTemplate))

// BuildPasswordResetEmail creates the recovery e-mail. The caller sets To.
func BuildPasswordResetEmail(data PasswordResetData) Email {
	return Email{
		Subject:  fmt.Sprintf("%s: redefinição de senha", data.SiteName),
		TextBody: buildResetText(data),
		HTMLBody: buildResetHTML(data),
	}
}

func buildResetText(data PasswordResetData) string {
	var buf bytes.Buffer
	if data.Name != "" {
		fmt.Fprintf(&buf, "Olá, %s.\n\n", data.Name)
	}
	fmt.Fprintf(&buf, "Recebemos um pedido para redefinir sua senha em %s.\n\n", data.SiteName)
	buf.WriteString("Para escolher uma nova senha, acesse:\n")
	buf.WriteString(data.ResetLink + "\n\n")
	fmt.Fprintf(&buf, "O link expira em %s.\n\n", data.ExpiresIn)
	buf.WriteString("Se você não fez este pedido, ignore este e-mail.\n")
	return buf.String()
}

func buildResetHTML(data PasswordResetData) string {
	var buf bytes.Buffer
	_ = resetTmpl.Execute(&buf, data)
	return buf.String()
}

const resetHTMLTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Redefinição de senha</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 22px; font-weight: 600; color: #0d6efd;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              {{if .Name}}<p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Olá, {{.Name}}.</p>{{end}}
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Recebemos um pedido para redefinir sua senha. Clique no botão abaixo para escolher uma nova senha.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ResetLink}}" style="display: inline-block; padding: 14px 32px; background-color: #0d6efd; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Redefinir senha
                    </a>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af; text-align: center;">
                O link expira em {{.ExpiresIn}}.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                Se você não fez este pedido, ignore este e-mail.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type SendGridMailer struct {
	fromEmail string
	client    *sendgrid.Client
	isSandBox bool
	logger    *zap.SugaredLogger
	// sleep between attempts
	backoff func(attempt int)
}

func NewSendgrid(apiKey string, fromEmail string, isProduction bool, logger *zap.SugaredLogger) *SendGridMailer {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	client := sendgrid.NewSendClient(apiKey)

	return &SendGridMailer{
		fromEmail: fromEmail,
		client:    client,
		// Sandbox mode is only used to validate your request. The email will never be delivered while this feature is enabled!
		isSandBox: !isProduction,
		logger:    logger,
		backoff: func(attempt int) {
			time.Sleep(time.Second * time.Duration(attempt+1))
		},
	}
}

// buildMessage renders templateFile into a SendGrid message. The template
// defines "subject" and "body", the plain text part is extracted from the body.
func (m SendGridMailer) buildMessage(templateFile, toUsername, toEmail string, data any, attachments []Attachment) (*mail.SGMailV3, error) {
	from := mail.NewEmail(util.GetAppName(), m.fromEmail)
	to := mail.NewEmail(toUsername, toEmail)

	// template parsing and building
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail template: %w", err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, fmt.Errorf("failed to execute mail subject: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return nil, fmt.Errorf("failed to execute mail body: %w", err)
	}

	message := mail.NewSingleEmail(from, subject.String(), to, autosig.PlainText(body.String()), body.String())

	for _, a := range attachments {
		message.AddAttachment(mail.NewAttachment().
			SetContent(base64.StdEncoding.EncodeToString(a.Data)).
			SetType(a.ContentType).
			SetFilename(a.FileName).
			SetDisposition("attachment"))
	}

	message.SetMailSettings(&mail.MailSettings{
		SandboxMode: &mail.Setting{
			Enable: &m.isSandBox,
		},
	})

	return message, nil
}

// Data is the struct the template is executed with, see templates/signature.tmpl
//
//	Example usage:
//	status, err := Send(mailer.SIGNATURE_TEMPLATE, form.FullName, email, SignatureMail{...})
func (m SendGridMailer) Send(templateFile, toUsername, toEmail string, data any, attachments ...Attachment) (int, error) {
	message, err := m.buildMessage(templateFile, toUsername, toEmail, data, attachments)
	if err != nil {
		m.logger.Errorw("Failed to build email", "error", err, "templateFile", templateFile)
		return -1, err
	}

	var lastErr error
	for i := 0; i < MAX_RETRY; i++ {
		response, err := m.client.Send(message)
		if err != nil {
			lastErr = err
			// linear backoff, not after the last attempt
			if i < MAX_RETRY-1 {
				m.backoff(i)
			}
			continue
		}

		m.logger.Infow("Email sent", "toEmail", toEmail, "status", response.StatusCode, "sandbox", m.isSandBox)
		return response.StatusCode, nil
	}

	m.logger.Errorf("Failed to send email after %d attempt, error: %v", MAX_RETRY, lastErr)

	return -1, fmt.Errorf("failed to send email after %d attempt: %w", MAX_RETRY, lastErr)
}

// SignatureMail is the data of SIGNATURE_TEMPLATE
type SignatureMail struct {
	AppName   string
	FullName  string
	Signature template.HTML
}

func NewSignatureMail(form autosig.SignatureForm) SignatureMail {
	return SignatureMail{
		AppName:  util.GetAppName(),
		FullName: form.FullName,
		// Render escapes every field of the form
		Signature: template.HTML(autosig.Render(form)),
	}
}

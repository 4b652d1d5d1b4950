package mailer

import "embed"

const (
	MAX_RETRY          = 3
	SIGNATURE_TEMPLATE = "signature.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Client interface {
	Send(templateFile, toUsername, toEmail string, data any, attachments ...Attachment) (int, error)
}

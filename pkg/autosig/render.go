package autosig

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

//go:embed "templates"
var FS embed.FS

var signatureTemplates = template.Must(template.ParseFS(FS, "templates/*.html"))

var avatarDataURIRe = regexp.MustCompile(`^data:image/(?:png|jpeg|gif|webp);base64,[A-Za-z0-9+/]+={0,2}$`)

// Separators used when two optional fields share one line.
var roleSeparators = map[Template]string{
	TemplateClassic: " at ",
	TemplateModern:  " @ ",
	TemplateBold:    " - ",
}

const contactSeparator = " • "

// signatureView is what the templates see: trimmed values, composite lines
// already joined and colors already checked.
type signatureView struct {
	Template         Template
	Name             string
	Role             string
	Phone            string
	Website          string
	Avatar           template.URL
	TextColor        string
	BackgroundColor  string
	ContactSeparator string
}

func newSignatureView(f SignatureForm) signatureView {
	tpl := f.Template()

	v := signatureView{
		Template:         tpl,
		Name:             strings.TrimSpace(f.FullName),
		Role:             JoinNonEmpty(roleSeparators[tpl], strings.TrimSpace(f.JobTitle), strings.TrimSpace(f.Company)),
		Phone:            strings.TrimSpace(f.Phone),
		Website:          strings.TrimSpace(f.Website),
		TextColor:        colorOrDefault(f.TextColor, DefaultTextColor),
		BackgroundColor:  colorOrDefault(f.BackgroundColor, DefaultBackgroundColor),
		ContactSeparator: contactSeparator,
	}

	if IsAvatarDataURI(f.AvatarImage) {
		// the data URI was matched against a strict pattern above
		v.Avatar = template.URL(strings.TrimSpace(f.AvatarImage))
	}

	return v
}

// contactLine is the single phone/website line of the bold template.
func (v signatureView) contactLine() string {
	return JoinNonEmpty(v.ContactSeparator, v.Phone, v.Website)
}

func IsAvatarDataURI(s string) bool {
	return avatarDataURIRe.MatchString(strings.TrimSpace(s))
}

// Render returns the signature markup for the form's template. It has no side
// effects and returns the same markup for the same form.
func Render(form SignatureForm) string {
	view := newSignatureView(form)

	var buf bytes.Buffer
	if err := signatureTemplates.ExecuteTemplate(&buf, string(view.Template), view); err != nil {
		// templates are parsed at init, an execution error is a bug in them
		panic(fmt.Sprintf("autosig: execute %s template: %v", view.Template, err))
	}

	return buf.String()
}

// RenderDocument wraps the signature in a standalone HTML document, used for
// the .html download.
func RenderDocument(form SignatureForm) string {
	var buf bytes.Buffer
	if err := signatureTemplates.ExecuteTemplate(&buf, "document", template.HTML(Render(form))); err != nil {
		panic(fmt.Sprintf("autosig: execute document template: %v", err))
	}

	return buf.String()
}

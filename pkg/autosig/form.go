package autosig

import (
	"regexp"
	"strings"
)

type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateBold    Template = "bold"
)

const (
	DefaultTextColor       = "#000000"
	DefaultBackgroundColor = "#ffffff"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ParseTemplate maps any unrecognized id to TemplateClassic.
func ParseTemplate(id string) Template {
	switch Template(strings.ToLower(strings.TrimSpace(id))) {
	case TemplateModern:
		return TemplateModern
	case TemplateBold:
		return TemplateBold
	default:
		return TemplateClassic
	}
}

func Templates() []Template {
	return []Template{TemplateClassic, TemplateModern, TemplateBold}
}

// SignatureForm is the user input a signature is rendered from.
// Every text field is optional, an empty string means absent.
type SignatureForm struct {
	FullName        string `json:"fullName" form:"fullName" binding:"omitempty,cmax=200"`
	JobTitle        string `json:"jobTitle" form:"jobTitle" binding:"omitempty,cmax=200"`
	Company         string `json:"company" form:"company" binding:"omitempty,cmax=200"`
	Phone           string `json:"phone" form:"phone" binding:"omitempty,cmax=200"`
	Website         string `json:"website" form:"website" binding:"omitempty,cmax=200"`
	TextColor       string `json:"textColor" form:"textColor" binding:"omitempty,hexcolor"`
	BackgroundColor string `json:"backgroundColor" form:"backgroundColor" binding:"omitempty,hexcolor"`
	// data:image/...;base64,... as returned by NormalizeAvatar
	AvatarImage string `json:"avatarImage" form:"avatarImage"`
	TemplateID  string `json:"templateId" form:"templateId"`
}

func NewDefaultForm() SignatureForm {
	return SignatureForm{
		TextColor:       DefaultTextColor,
		BackgroundColor: DefaultBackgroundColor,
		TemplateID:      string(TemplateClassic),
	}
}

func (f SignatureForm) Template() Template {
	return ParseTemplate(f.TemplateID)
}

func (f SignatureForm) HasWebsite() bool {
	return strings.TrimSpace(f.Website) != ""
}

func colorOrDefault(c, fallback string) string {
	c = strings.TrimSpace(c)
	if !hexColorRe.MatchString(c) {
		return fallback
	}
	return strings.ToLower(c)
}

// JoinNonEmpty joins a and b with sep only when both are present.
func JoinNonEmpty(sep, a, b string) string {
	switch {
	case a != "" && b != "":
		return a + sep + b
	case a != "":
		return a
	default:
		return b
	}
}

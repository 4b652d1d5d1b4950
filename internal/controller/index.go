package controller

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/SeakMengs/AutoSig/web"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

type templateOption struct {
	ID       autosig.Template
	Label    string
	Selected bool
}

type indexPage struct {
	AppName     string
	Form        autosig.SignatureForm
	Templates   []templateOption
	Preview     template.HTML
	QRCodeSize  int
	AvatarMaxKB int64
	MailEnabled bool
}

func (ic IndexController) Index(ctx *gin.Context) {
	form := autosig.NewDefaultForm()
	cfg := ic.app.Exporter.Config()

	var options []templateOption
	for _, t := range autosig.Templates() {
		options = append(options, templateOption{
			ID:       t,
			Label:    strings.ToUpper(string(t[:1])) + string(t[1:]),
			Selected: t == form.Template(),
		})
	}

	ctx.HTML(http.StatusOK, web.IndexTemplate, indexPage{
		AppName:   util.GetAppName(),
		Form:      form,
		Templates: options,
		// Render escapes every field of the form
		Preview:     template.HTML(autosig.Render(form)),
		QRCodeSize:  cfg.QRCodeSize,
		AvatarMaxKB: cfg.AvatarMaxBytes / 1024,
		MailEnabled: ic.app.Mailer != nil,
	})
}

func (ic IndexController) Health(ctx *gin.Context) {
	util.ResponseSuccess(ctx, nil)
}

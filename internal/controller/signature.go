package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/AutoSig/internal/mailer"
	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/gin-gonic/gin"
)

type SignatureController struct {
	*baseController
}

type downloadRequest struct {
	autosig.SignatureForm
	autosig.ExportOptions
}

type emailRequest struct {
	Form  autosig.SignatureForm `json:"form"`
	Email string                `json:"email" binding:"required,strNotEmpty,cmin=3,cmax=254,email"`
}

func (sc SignatureController) Templates(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"templates": autosig.Templates(),
		"default":   autosig.TemplateClassic,
	})
}

func (sc SignatureController) Preview(ctx *gin.Context) {
	var form autosig.SignatureForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		sc.logger(ctx).Debugf("Failed to bind preview request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	html := autosig.Render(form)

	util.ResponseSuccess(ctx, gin.H{
		"html":       html,
		"text":       autosig.PlainText(html),
		"template":   form.Template(),
		"hasWebsite": form.HasWebsite(),
	})
}

func (sc SignatureController) Download(ctx *gin.Context) {
	format, err := autosig.ParseFormat(ctx.Param("format"))
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Unsupported format", util.GenerateErrorMessages(err, "format"), nil)
		return
	}

	var body downloadRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sc.logger(ctx).Debugf("Failed to bind download request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	res, err := sc.app.Exporter.Export(body.SignatureForm, format, body.ExportOptions)
	if err != nil {
		sc.logger(ctx).Errorw("Failed to export signature", "format", format, "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to export signature", util.GenerateErrorMessages(err, "format"), nil)
		return
	}

	ctx.Header("Content-Disposition", util.AttachmentDisposition(res.FileName))
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, res.ContentType, res.Data)
}

func (sc SignatureController) Email(ctx *gin.Context) {
	if sc.app.Mailer == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Mail is not configured", util.GenerateErrorMessages(errors.New("mail is disabled"), "email"), nil)
		return
	}

	var body emailRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sc.logger(ctx).Debugf("Failed to bind email request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	png, err := sc.app.Exporter.PNG(body.Form, autosig.ExportOptions{})
	if err != nil {
		sc.logger(ctx).Errorw("Failed to rasterize signature for email", "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to export signature", util.GenerateErrorMessages(err), nil)
		return
	}

	status, err := sc.app.Mailer.Send(mailer.SIGNATURE_TEMPLATE, body.Form.FullName, body.Email, mailer.NewSignatureMail(body.Form), mailer.Attachment{
		FileName:    png.FileName,
		ContentType: png.ContentType,
		Data:        png.Data,
	})
	if err != nil || status >= http.StatusBadRequest {
		if err == nil {
			err = errors.New(http.StatusText(status))
		}
		sc.logger(ctx).Errorw("Failed to send signature email", "status", status, "error", err)
		util.ResponseFailed(ctx, http.StatusBadGateway, "Failed to send email", util.GenerateErrorMessages(err, "email"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"status": status})
}

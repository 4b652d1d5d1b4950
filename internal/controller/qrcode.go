package controller

import (
	"net/http"

	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/gin-gonic/gin"
)

type QRCodeController struct {
	*baseController
}

type qrCodeQuery struct {
	URL  string `form:"url" binding:"omitempty,cmax=4096"`
	Size int    `form:"size" binding:"omitempty,gte=64,lte=1024"`
}

// Generate answers 204 when there is nothing to encode, the page then clears
// its image.
func (qc QRCodeController) Generate(ctx *gin.Context) {
	var query qrCodeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	size := query.Size
	if size == 0 {
		size = qc.app.Exporter.Config().QRCodeSize
	}

	png, err := autosig.GenerateQRCode(query.URL, size)
	if err != nil {
		qc.logger(ctx).Warnw("Failed to generate QR code", "error", err)
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "Failed to generate QR code", util.GenerateErrorMessages(err, "url"), nil)
		return
	}
	if png == nil {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(http.StatusOK, autosig.ContentTypePNG, png)
}

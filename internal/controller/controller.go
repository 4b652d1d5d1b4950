package controller

import (
	appcontext "github.com/SeakMengs/AutoSig/internal/app_context"
	"github.com/SeakMengs/AutoSig/internal/constant"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index     *IndexController
	Signature *SignatureController
	QRCode    *QRCodeController
	Avatar    *AvatarController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:     &IndexController{baseController: bc},
		Signature: &SignatureController{baseController: bc},
		QRCode:    &QRCodeController{baseController: bc},
		Avatar:    &AvatarController{baseController: bc},
	}
}

// Logger tagged with the request id set by the request id middleware
func (b *baseController) logger(ctx *gin.Context) *zap.SugaredLogger {
	if id := ctx.GetString(constant.REQUEST_ID_KEY); id != "" {
		return b.app.Logger.With("requestId", id)
	}
	return b.app.Logger
}

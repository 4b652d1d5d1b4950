package route

import (
	"github.com/SeakMengs/AutoSig/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_QRCode(r *gin.RouterGroup, qc *controller.QRCodeController) {
	v1 := r.Group("/v1/qrcode")
	{
		v1.GET("", qc.Generate)
	}
}

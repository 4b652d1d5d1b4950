package route

import (
	"github.com/SeakMengs/AutoSig/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Signatures(r *gin.RouterGroup, sc *controller.SignatureController) {
	v1 := r.Group("/v1/signatures")
	{
		v1.GET("/templates", sc.Templates)
		v1.POST("/preview", sc.Preview)
		v1.POST("/download/:format", sc.Download)
		v1.POST("/email", sc.Email)
	}
}

package route

import (
	"github.com/SeakMengs/AutoSig/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Avatars(r *gin.RouterGroup, ac *controller.AvatarController) {
	v1 := r.Group("/v1/avatars")
	{
		v1.POST("", ac.Upload)
	}
}

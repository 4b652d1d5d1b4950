package middleware

import (
	"github.com/SeakMengs/AutoSig/internal/constant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Reuse the caller's request id when it is a valid uuid, otherwise assign one
func (m Middleware) RequestIDMiddleware(ctx *gin.Context) {
	id := ctx.GetHeader(constant.REQUEST_ID_HEADER)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	ctx.Set(constant.REQUEST_ID_KEY, id)
	ctx.Header(constant.REQUEST_ID_HEADER, id)
	ctx.Next()
}

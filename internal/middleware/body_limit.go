package middleware

import (
	"fmt"
	"net/http"

	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/gin-gonic/gin"
)

// Rejects bodies larger than one avatar and a form. A body without a
// Content-Length is cut at the same size while the handler reads it.
func (m Middleware) BodyLimitMiddleware(ctx *gin.Context) {
	limit := m.app.Exporter.Config().MaxRequestBytes()

	if ctx.Request.ContentLength > limit {
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "Request body is too large", util.GenerateErrorMessages(fmt.Errorf("body exceeds %d bytes", limit), "body"), nil)
		return
	}

	if ctx.Request.Body != nil {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
	}
	ctx.Next()
}

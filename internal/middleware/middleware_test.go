package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcontext "github.com/SeakMengs/AutoSig/internal/app_context"
	"github.com/SeakMengs/AutoSig/internal/config"
	"github.com/SeakMengs/AutoSig/internal/constant"
	ratelimiter "github.com/SeakMengs/AutoSig/internal/rate_limiter"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	app := &appcontext.Application{Logger: zap.NewNop().Sugar()}
	rl := ratelimiter.NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: limit,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, app.Logger)
	m := NewMiddleware(app, rl)

	r := gin.New()
	r.Use(m.RequestIDMiddleware, m.RateLimiterMiddleware)
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(constant.REQUEST_ID_KEY))
	})
	return r
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := newTestRouter(2)

	for i, expected := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != expected {
			t.Errorf("request %d: expected %d, got %d", i+1, expected, w.Code)
		}
		if expected == http.StatusTooManyRequests && w.Header().Get("Retry-After") != "60" {
			t.Errorf("expected Retry-After 60, got %q", w.Header().Get("Retry-After"))
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter(100)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(constant.REQUEST_ID_HEADER)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a generated uuid, got %q", id)
	}
	if w.Body.String() != id {
		t.Errorf("expected the id in the context, got %q", w.Body.String())
	}

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constant.REQUEST_ID_HEADER, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(constant.REQUEST_ID_HEADER); got != given {
		t.Errorf("expected %q to be kept, got %q", given, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constant.REQUEST_ID_HEADER, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(constant.REQUEST_ID_HEADER); got == "not-a-uuid" {
		t.Error("expected an invalid id to be replaced")
	}
}

func TestBodyLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := autosig.NewDefaultConfig()
	cfg.AvatarMaxBytes = 1024
	app := &appcontext.Application{Logger: zap.NewNop().Sugar(), Exporter: autosig.NewExporter(cfg, nil)}
	m := NewMiddleware(app, nil)

	r := gin.New()
	r.POST("/", m.BodyLimitMiddleware, func(ctx *gin.Context) {
		if _, err := io.ReadAll(ctx.Request.Body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				ctx.Status(http.StatusRequestEntityTooLarge)
				return
			}
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Status(http.StatusOK)
	})

	limit := cfg.MaxRequestBytes()

	tests := []struct {
		name          string
		size          int64
		unknownLength bool
		expectedCode  int
	}{
		{name: "small", size: 512, expectedCode: http.StatusOK},
		{name: "at the limit", size: limit, expectedCode: http.StatusOK},
		{name: "declared too large", size: limit + 1, expectedCode: http.StatusRequestEntityTooLarge},
		{name: "streamed too large", size: limit + 1, unknownLength: true, expectedCode: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, tt.size)))
			if tt.unknownLength {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expectedCode {
				t.Errorf("expected %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}

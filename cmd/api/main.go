package main

import (
	"net/http"

	appcontext "github.com/SeakMengs/AutoSig/internal/app_context"
	"github.com/SeakMengs/AutoSig/internal/config"
	"github.com/SeakMengs/AutoSig/internal/constant"
	"github.com/SeakMengs/AutoSig/internal/controller"
	"github.com/SeakMengs/AutoSig/internal/env"
	"github.com/SeakMengs/AutoSig/internal/mailer"
	"github.com/SeakMengs/AutoSig/internal/middleware"
	ratelimiter "github.com/SeakMengs/AutoSig/internal/rate_limiter"
	"github.com/SeakMengs/AutoSig/internal/route"
	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/SeakMengs/AutoSig/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterValidations(v); err != nil {
			logger.Panic(err)
		}
	}

	sigCfg := cfg.Signature.Autosig()
	fonts, err := autosig.NewFontLoader(sigCfg)
	if err != nil {
		logger.Warnf("Using the embedded %s font: %v", fonts.Name, err)
	}
	logger.Infof("Rasterizing with font family %s", fonts.Name)

	app := appcontext.Application{
		Config:   &cfg,
		Logger:   logger,
		Exporter: autosig.NewExporter(sigCfg, fonts),
	}

	if cfg.IsMailEnabled() {
		app.Mailer = mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	} else {
		logger.Info("Mail is disabled, set MAIL_SEND_GRID_API_KEY and MAIL_FROM_MAIL to enable it")
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	// avatars are the only uploads, keep the rest of a large body on disk
	r.MaxMultipartMemory = sigCfg.AvatarMaxBytes + 1<<20
	r.SetHTMLTemplate(web.Templates())

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", "Accept", constant.REQUEST_ID_HEADER}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", constant.REQUEST_ID_HEADER}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestIDMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)
	r.GET("/healthz", _controller.Index.Health)
	r.StaticFS("/web/static", http.FS(web.StaticFS()))

	rApi := r.Group("/api")
	rApi.Use(_middleware.RateLimiterMiddleware, _middleware.BodyLimitMiddleware)

	route.V1_Signatures(rApi, _controller.Signature)
	route.V1_QRCode(rApi, _controller.QRCode)
	route.V1_Avatars(rApi, _controller.Avatar)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}

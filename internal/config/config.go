package config

import (
	"strings"
	"time"

	"github.com/SeakMengs/AutoSig/internal/env"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
)

type Config struct {
	Port        string
	ENV         string
	RateLimiter RateLimiterConfig
	CORS        CORSConfig
	Signature   SignatureConfig
	Mail        MailConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type CORSConfig struct {
	AllowOrigins []string
}

type SignatureConfig struct {
	FONT_METADATA_PATH   string
	FONT_FAMILY          string
	QR_CODE_SIZE         int
	EXPORT_SCALE         float64
	AVATAR_MAX_BYTES     int64
	AVATAR_MAX_DIMENSION int
}

type MailConfig struct {
	SEND_GRID  SendGridConfig
	FROM_EMAIL string
}

type SendGridConfig struct {
	API_KEY string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

// Mail is enabled only when SendGrid is configured
func (c Config) IsMailEnabled() bool {
	return c.Mail.SEND_GRID.API_KEY != "" && c.Mail.FROM_EMAIL != ""
}

func (c SignatureConfig) Autosig() *autosig.Config {
	return &autosig.Config{
		FontMetadataPath:   c.FONT_METADATA_PATH,
		FontFamily:         c.FONT_FAMILY,
		QRCodeSize:         autosig.ClampQRCodeSize(c.QR_CODE_SIZE),
		Scale:              c.EXPORT_SCALE,
		AvatarMaxBytes:     c.AVATAR_MAX_BYTES,
		AvatarMaxDimension: c.AVATAR_MAX_DIMENSION,
	}
}

func GetConfig() Config {
	rateLimiteTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimiteTimeFrame = 60 * time.Second
	}

	defaults := autosig.NewDefaultConfig()

	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            rateLimiteTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		CORS: CORSConfig{
			AllowOrigins: env.GetStrings("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Signature: SignatureConfig{
			FONT_METADATA_PATH:   env.GetString("FONT_METADATA_PATH", defaults.FontMetadataPath),
			FONT_FAMILY:          env.GetString("FONT_FAMILY", defaults.FontFamily),
			QR_CODE_SIZE:         env.GetInt("QR_CODE_SIZE", defaults.QRCodeSize),
			EXPORT_SCALE:         env.GetFloat("EXPORT_SCALE", defaults.Scale),
			AVATAR_MAX_BYTES:     env.GetInt64("AVATAR_MAX_BYTES", defaults.AvatarMaxBytes),
			AVATAR_MAX_DIMENSION: env.GetInt("AVATAR_MAX_DIMENSION", defaults.AvatarMaxDimension),
		},
		Mail: MailConfig{
			FROM_EMAIL: env.GetString("MAIL_FROM_MAIL", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
		},
	}
}

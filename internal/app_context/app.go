package appcontext

import (
	"github.com/SeakMengs/AutoSig/internal/config"
	"github.com/SeakMengs/AutoSig/internal/mailer"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Mailer delivers rendered signatures, nil when mail is not configured.
	Mailer mailer.Client

	// Exporter renders signatures into html, png, pdf and zip downloads.
	Exporter *autosig.Exporter
}

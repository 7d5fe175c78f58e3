package setup

import (
	"time"

	"github.com/atelier-dev/atelier/internal/config"
	"github.com/atelier-dev/atelier/internal/handler"
	"github.com/atelier-dev/atelier/internal/jwt"
	"github.com/atelier-dev/atelier/internal/mailer"
	"github.com/atelier-dev/atelier/internal/markdown"
	"github.com/atelier-dev/atelier/internal/middleware"
	"github.com/atelier-dev/atelier/internal/service"
	"github.com/atelier-dev/atelier/internal/storage/pg"
	"github.com/atelier-dev/atelier/internal/upload"
)

const uploadSignatureTTL = 15 * time.Minute

// Dependencies holds every initialized collaborator the server needs.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies builds the full object graph from configuration.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.Public.Smtp.Server != "" {
		mail = mailer.NewSmtp(cfg.Public.Smtp, cfg.SmtpPassword())
	}

	auth := service.NewAuth(storage, jwtService)
	accountSetup := service.NewSetup(storage, cfg.Public.MinPasswordLen)
	blog := service.NewBlog(storage)
	project := service.NewProject(storage)

	h := handler.New(
		auth,
		accountSetup,
		blog,
		project,
		markdown.New(),
		upload.NewSigner(cfg.UploadSigningSecret(), uploadSignatureTTL),
		mail,
		storage,
		cfg,
	)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}

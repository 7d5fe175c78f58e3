package handler

import (
	"context"

	"github.com/atelier-dev/atelier/internal/config"
	"github.com/atelier-dev/atelier/internal/mailer"
	"github.com/atelier-dev/atelier/internal/markdown"
	"github.com/atelier-dev/atelier/internal/service"
	"github.com/atelier-dev/atelier/internal/upload"
)

// Pinger reports whether the backing store can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	setup    service.SetupService
	blog     service.BlogService
	project  service.ProjectService
	renderer *markdown.Renderer
	signer   *upload.Signer
	mailer   mailer.Mailer
	health   Pinger
	cfg      *config.Config
}

func New(
	auth service.AuthService,
	setup service.SetupService,
	blog service.BlogService,
	project service.ProjectService,
	renderer *markdown.Renderer,
	signer *upload.Signer,
	mailer mailer.Mailer,
	health Pinger,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, setup, blog, project, renderer, signer, mailer, health, cfg}
}

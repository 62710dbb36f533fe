package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"elampillai/internal/app/blog"
	"elampillai/internal/app/shops"
	"elampillai/internal/config"
	"elampillai/internal/confirm"
	"elampillai/internal/http/middleware"
	"elampillai/internal/httpapi"
	"elampillai/internal/kv"
	"elampillai/internal/logging"
)

type application struct {
	editor   *shops.Editor
	sessions *blog.Sessions
	handler  http.Handler
}

func newApplication(ctx context.Context, cfg *config.Config, backend kv.Backend, logger zerolog.Logger) (*application, error) {
	policy, err := confirm.ParsePolicy(cfg.Confirm.Policy)
	if err != nil {
		return nil, err
	}

	store := kv.New(backend, kv.WithLogger(logging.Component(logger, "kv")))
	editor := shops.NewEditor(ctx,
		kv.NewCollection[shops.Shop](store, shops.StorageKey),
		shops.WithLogger(logging.Component(logger, "shops")),
	)
	sessions := blog.NewSessions(cfg.Session.TTL, logging.Component(logger, "blog"))
	issuer := confirm.NewIssuer(policy, cfg.Confirm.Secret, cfg.Confirm.TTL)

	handler := middleware.Chain(
		httpapi.New(editor, sessions, issuer).Routes(),
		middleware.Session(cfg.Session.TTL),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	return &application{editor: editor, sessions: sessions, handler: handler}, nil
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authsvc/modules/auth"
	"github.com/dmitrymomot/authsvc/modules/mail"
	"github.com/dmitrymomot/authsvc/modules/user"
	"github.com/dmitrymomot/authsvc/pkg/config"
	"github.com/dmitrymomot/authsvc/pkg/cookie"
	"github.com/dmitrymomot/authsvc/pkg/httpserver"
	"github.com/dmitrymomot/authsvc/pkg/jwt"
	"github.com/dmitrymomot/authsvc/pkg/logger"
	"github.com/dmitrymomot/authsvc/pkg/mongo"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "authsvc"))
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		mongoCfg  mongo.Config
		jwtCfg    jwt.Config
		cookieCfg cookie.Config
		mailCfg   mail.Config
		httpCfg   httpserver.Config
	)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&jwtCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&httpCfg)

	jwtCfg.Normalize()

	// storage
	client, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo, err := user.NewMongoRepository(ctx, client.Database(mongoCfg.Database))
	if err != nil {
		return err
	}

	// tokens
	tokens, err := jwt.New(jwtCfg)
	if err != nil {
		return err
	}

	// cookies: secure outside development regardless of config
	cookieOpts := []cookie.Option{}
	if appCfg.Environment != "development" {
		cookieOpts = append(cookieOpts, cookie.WithSecure(true))
	}
	cookies := cookie.NewFromConfig(cookieCfg, cookieOpts...)

	// mail: Postmark when configured, filesystem sender otherwise
	var sender mail.Sender
	if mailCfg.PostmarkServerToken != "" {
		sender, err = mail.NewPostmarkSender(mailCfg)
		if err != nil {
			return err
		}
	} else {
		log.Warn("postmark not configured, writing emails to disk", "dir", mailCfg.DevOutputDir)
		sender = mail.NewDevSender(mailCfg.DevOutputDir)
	}

	dispatcher := mail.NewDispatcher(
		mail.NewMailer(sender, mailCfg),
		log.With("component", "mail"),
		mailCfg.QueueSize,
	)
	defer dispatcher.Close()

	// auth module
	svc := auth.NewService(repo, tokens, dispatcher, log.With("component", "auth"))
	transport, err := auth.NewTransport(cookies, tokens.AccessTTL(), tokens.RefreshTTL())
	if err != nil {
		return err
	}
	guard := auth.NewGuard(tokens, svc)
	handler := auth.NewHandler(svc, transport, guard, log.With("component", "http"))

	router := newRouter(ctx, log, handler, mongo.Healthcheck(client))

	srv := httpserver.New(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func newRouter(ctx context.Context, log *slog.Logger, authHandler *auth.Handler, readiness func(context.Context) error) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, readiness))

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", authHandler.Handle())
	})

	return r
}

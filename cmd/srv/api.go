package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/middleware"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/realtime"
	"github.com/atoz-lab/backend/pkg/prometheus"
	"github.com/atoz-lab/backend/pkg/router"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadSnowflake()
	s.loadRepos()
	s.loadBus()
	s.loadDomains()
	s.loadMediator()

	cfg := xcontext.Configs(s.ctx)
	if cfg.Database.Driver == "sqlite" {
		// A sqlite database is usually a local one, create it on the fly.
		if err := s.migrateDB(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifier := middleware.NewAuthVerifier(s.tokenEngine, cfg.Realtime.PathPrefix)
	registry := realtime.NewRegistry()
	realtimeServer := realtime.NewServer(
		s.contextBuilder, verifier, s.mediator, registry, cfg.ApiServer.AllowedOrigins)

	subscriber, err := s.newSubscriber(cfg.Realtime.Topic, realtimeServer.HandleComment)
	if err != nil {
		return err
	}

	if err := subscriber.Subscribe(ctx); err != nil {
		return err
	}
	defer subscriber.Stop(s.ctx)

	httpSrv := &http.Server{
		Addr:              cfg.ApiServer.Address(),
		Handler:           middleware.AllowCors(cfg.ApiServer.AllowedOrigins)(s.loadRouter(verifier, realtimeServer)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if cfg.ApiServer.Cert != "" && cfg.ApiServer.Key != "" {
		err = httpSrv.ListenAndServeTLS(cfg.ApiServer.Cert, cfg.ApiServer.Key)
	} else {
		err = httpSrv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

// contextBuilder attaches the process-wide dependencies to a request context.
func (s *srv) contextBuilder(ctx context.Context) context.Context {
	ctx = xcontext.WithConfigs(ctx, xcontext.Configs(s.ctx))
	ctx = xcontext.WithLogger(ctx, xcontext.Logger(s.ctx))
	ctx = xcontext.WithSnowFlake(ctx, xcontext.SnowFlake(s.ctx))
	return xcontext.WithDB(ctx, xcontext.DB(s.ctx))
}

func (s *srv) loadRouter(verifier *middleware.AuthVerifier, realtimeServer http.Handler) http.Handler {
	cfg := xcontext.Configs(s.ctx)

	r := router.New(s.contextBuilder)
	r.Before(middleware.WithStartTime())
	r.AddCloser(middleware.Logger())
	r.AddCloser(middleware.Prometheus())

	r.Handle("/metrics", prometheus.NewHandler())
	r.Handle(cfg.Realtime.PathPrefix, realtimeServer)

	api := r.Route("/api")

	// Public API.
	router.POST(api, "/user/register", mediator.Handle[model.RegisterRequest, model.RegisterResponse](s.mediator))
	router.POST(api, "/user/login", mediator.Handle[model.LoginRequest, model.LoginResponse](s.mediator))

	// These following APIs need authentication.
	authRouter := api.Branch()
	authRouter.Before(verifier.Middleware())
	{
		// User API
		router.GET(authRouter, "/user",
			mediator.Handle[model.GetCurrentUserRequest, model.GetCurrentUserResponse](s.mediator))

		// Activity API
		router.GET(authRouter, "/activities",
			mediator.Handle[model.GetActivitiesRequest, model.GetActivitiesResponse](s.mediator))
		router.POST(authRouter, "/activities",
			mediator.Handle[model.CreateActivityRequest, model.CreateActivityResponse](s.mediator))
		router.GET(authRouter, "/activities/{activity_id}",
			mediator.Handle[model.GetActivityRequest, model.GetActivityResponse](s.mediator))
		router.PUT(authRouter, "/activities/{activity_id}",
			mediator.Handle[model.EditActivityRequest, mediator.Unit](s.mediator))
		router.DELETE(authRouter, "/activities/{activity_id}",
			mediator.Handle[model.DeleteActivityRequest, mediator.Unit](s.mediator))
		router.POST(authRouter, "/activities/{activity_id}/attend",
			mediator.Handle[model.AttendActivityRequest, mediator.Unit](s.mediator))
		router.DELETE(authRouter, "/activities/{activity_id}/attend",
			mediator.Handle[model.UnattendActivityRequest, mediator.Unit](s.mediator))

		// Comment API
		router.GET(authRouter, "/activities/{activity_id}/comments",
			mediator.Handle[model.GetCommentsRequest, model.GetCommentsResponse](s.mediator))
		router.POST(authRouter, "/activities/{activity_id}/comments",
			mediator.Handle[model.CreateCommentRequest, model.CreateCommentResponse](s.mediator))

		// Profile API
		router.GET(authRouter, "/profiles/{username}/follow",
			mediator.Handle[model.GetFollowingsRequest, model.GetFollowingsResponse](s.mediator))
		router.POST(authRouter, "/profiles/{username}/follow",
			mediator.Handle[model.FollowUserRequest, mediator.Unit](s.mediator))
		router.DELETE(authRouter, "/profiles/{username}/follow",
			mediator.Handle[model.UnfollowUserRequest, mediator.Unit](s.mediator))
	}

	return r.Handler()
}

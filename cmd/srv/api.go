package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pngfun/backend/internal/middleware"
	"github.com/pngfun/backend/pkg/prometheus"
	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/xcontext"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}
	defer s.close()

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadStorage(); err != nil {
		return err
	}

	s.loadAuth()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Starting server on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		xcontext.Logger(s.ctx).Infof("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *srv) handler() http.Handler {
	cfg := xcontext.Configs(s.ctx).ApiServer
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(s.router.Handler())
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.WithSessionUser())
	s.router.After(middleware.HandleSaveSession())
	s.router.After(middleware.HandleSetCookie())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler())
	s.router.Handle(http.MethodGet, "/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	apiRouter := s.router.Group("/api")

	// Public API.
	{
		router.GET(apiRouter, "/challenges", s.challengeDomain.GetActive)
		router.GET(apiRouter, "/challenges/get", s.challengeDomain.Get)
		router.GET(apiRouter, "/submissions", s.submissionDomain.GetList)
		router.GET(apiRouter, "/submissions/check", s.submissionDomain.Check)
		router.GET(apiRouter, "/votes", s.voteDomain.GetList)
		router.GET(apiRouter, "/leaderboard", s.leaderboardDomain.Get)
		router.GET(apiRouter, "/nonce", s.authDomain.GetNonce)
		router.GET(apiRouter, "/user/by-username", s.userDomain.GetByUsername)
		router.GET(apiRouter, "/check-worldapp-user", s.userDomain.CheckWorldAppUser)
		router.GET(apiRouter, "/config", s.userDomain.GetConfig)
		router.POST(apiRouter, "/check-session", s.userDomain.CheckSession)
	}

	// Writes are rate limited per user, or per ip for anonymous callers.
	limitedRouter := apiRouter.Branch()
	limitedRouter.Before(middleware.NewRateLimiter(xcontext.Configs(s.ctx).RateLimit).Middleware())
	{
		router.POST(limitedRouter, "/submissions", s.submissionDomain.Create)
		router.POST(limitedRouter, "/votes", s.voteDomain.Create)
		router.POST(limitedRouter, "/verify", s.verifyDomain.Verify)
		router.POST(limitedRouter, "/complete-siwe", s.authDomain.CompleteSIWE)
	}

	authRouter := apiRouter.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/me", s.userDomain.GetMe)
		router.POST(authRouter, "/user/onboarding", s.userDomain.CompleteOnboarding)
	}
}

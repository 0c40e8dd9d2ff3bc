package main

import (
	"context"
	"net/http"

	"github.com/pngfun/backend/config"
	"github.com/pngfun/backend/internal/domain"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/api/worldid"
	"github.com/pngfun/backend/pkg/logger"
	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/session"
	"github.com/pngfun/backend/pkg/storage"
	"github.com/pngfun/backend/pkg/token"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/pngfun/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo       repository.UserRepository
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
	voteRepo       repository.VoteRepository

	userDomain        domain.UserDomain
	authDomain        domain.AuthDomain
	verifyDomain      domain.VerifyDomain
	challengeDomain   domain.ChallengeDomain
	submissionDomain  domain.SubmissionDomain
	voteDomain        domain.VoteDomain
	leaderboardDomain domain.LeaderboardDomain

	storage     storage.Storage
	redisClient xredis.Client
	closers     []func() error

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("env-file"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() error {
	cfg := xcontext.Configs(s.ctx)
	l, err := logger.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithLogger(s.ctx, l)
	s.closers = append(s.closers, l.Sync)
	return nil
}

func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(postgres.Open(cfg.ConnectionString()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	s.ctx = xcontext.WithDB(s.ctx, db)
	s.closers = append(s.closers, sqlDB.Close)
	return nil
}

// loadRedisClient leaves redisClient as a nil interface when redis is
// disabled, the leaderboard then reads the database directly.
func (s *srv) loadRedisClient() error {
	cfg := xcontext.Configs(s.ctx).Redis
	if !cfg.Enabled {
		xcontext.Logger(s.ctx).Infof("Redis is disabled")
		return nil
	}

	client, err := xredis.NewClient(s.ctx, cfg)
	if err != nil {
		return err
	}

	s.redisClient = client
	s.closers = append(s.closers, client.Close)
	return nil
}

func (s *srv) loadStorage() error {
	st, err := storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		return err
	}

	s.storage = st
	return nil
}

func (s *srv) loadAuth() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx, token.NewEngine(cfg.Auth.TokenIssuer, cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, session.NewCookieStore(cfg.Session, cfg.IsProduction()))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.WorldID.Timeout})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.challengeRepo = repository.NewChallengeRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.voteRepo = repository.NewVoteRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.verifyDomain = domain.NewVerifyDomain(s.userRepo, worldid.New(cfg.WorldID))
	s.challengeDomain = domain.NewChallengeDomain(s.challengeRepo, s.submissionRepo)
	s.submissionDomain = domain.NewSubmissionDomain(s.submissionRepo, s.challengeRepo, s.userRepo, s.storage)
	s.voteDomain = domain.NewVoteDomain(s.voteRepo, s.submissionRepo)
	s.leaderboardDomain = domain.NewLeaderboardDomain(s.userRepo, s.redisClient)
}

// load runs the shared bootstrap of every command.
func (s *srv) load(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	if err := s.loadLogger(); err != nil {
		return err
	}

	return s.loadDatabase()
}

func (s *srv) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close resource: %v", err)
		}
	}
}

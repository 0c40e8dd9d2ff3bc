package testutil

import (
	"context"
	"time"

	"github.com/pngfun/backend/config"
	"github.com/pngfun/backend/migration"
	"github.com/pngfun/backend/pkg/logger"
	"github.com/pngfun/backend/pkg/session"
	"github.com/pngfun/backend/pkg/token"
	"github.com/pngfun/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env:      "local",
		LogLevel: "debug",
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			TokenIssuer: "png.fun",
			SessionToken: config.TokenConfigs{
				Name:       "user_session",
				Expiration: 30 * 24 * time.Hour,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "siwe",
			MaxAge: 10 * time.Minute,
		},
		File: config.FileConfigs{
			Bucket:       "pngfun",
			MaxSize:      1 << 20,
			MaxWidth:     64,
			MaxDimension: 1024,
		},
		WorldID: config.WorldIDConfigs{
			Endpoint: "https://developer.worldcoin.org",
			AppID:    "app_test",
		},
		Leaderboard: config.LeaderboardConfigs{
			DefaultLimit: 10,
			MaxLimit:     100,
			CacheTTL:     time.Minute,
		},
		Challenge: config.ChallengeConfigs{
			VotingPeriod:      24 * time.Hour,
			StatusInterval:    time.Minute,
			AggregateInterval: time.Minute,
		},
		RateLimit: config.RateLimitConfigs{
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Network: config.NetworkConfigs{Name: "sepolia"},
	}
}

// MockContext returns a context carrying an empty in-memory database with
// the latest schema and the dependencies every domain expects.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a distinct database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, token.NewEngine(cfg.Auth.TokenIssuer, cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, session.NewCookieStore(cfg.Session, false))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

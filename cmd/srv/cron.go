package main

import (
	"os/signal"
	"syscall"

	"github.com/pngfun/backend/internal/domain/cron"
	"github.com/pngfun/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}
	defer s.close()

	if err := s.loadRedisClient(); err != nil {
		return err
	}
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx).Challenge
	cronJobManager, err := cron.NewCronJobManager()
	if err != nil {
		return err
	}

	cronJobManager.Register(cron.NewSubmissionAggregateCronJob(
		s.challengeRepo, s.submissionRepo, cfg.AggregateInterval))
	cronJobManager.Register(cron.NewChallengeStatusCronJob(
		s.challengeRepo, s.submissionRepo, s.voteRepo, s.userRepo, s.redisClient, cfg.StatusInterval))

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cronJobManager.Start(ctx)
}

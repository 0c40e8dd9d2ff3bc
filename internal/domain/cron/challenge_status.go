package cron

import (
	"context"
	"time"

	"github.com/pngfun/backend/internal/common"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/pngfun/backend/pkg/xredis"
)

// ChallengeStatusCronJob moves ended challenges to voting, and challenges
// whose voting period is over to completed, settling them on the way.
type ChallengeStatusCronJob struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
	voteRepo       repository.VoteRepository
	userRepo       repository.UserRepository
	redisClient    xredis.Client
	interval       time.Duration
	now            func() time.Time
}

func NewChallengeStatusCronJob(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	interval time.Duration,
) *ChallengeStatusCronJob {
	return &ChallengeStatusCronJob{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
		voteRepo:       voteRepo,
		userRepo:       userRepo,
		redisClient:    redisClient,
		interval:       interval,
		now:            time.Now,
	}
}

func (job *ChallengeStatusCronJob) Name() string {
	return "challenge_status"
}

func (job *ChallengeStatusCronJob) Interval() time.Duration {
	return job.interval
}

func (job *ChallengeStatusCronJob) Do(ctx context.Context) error {
	now := job.now()

	ended, err := job.challengeRepo.GetEndedBefore(ctx, entity.ChallengeActive, now)
	if err != nil {
		return err
	}

	for _, challenge := range ended {
		changed, err := job.challengeRepo.UpdateStatus(ctx, challenge.ID, entity.ChallengeActive, entity.ChallengeVoting)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot move challenge %s to voting: %v", challenge.ID, err)
			continue
		}

		if changed {
			xcontext.Logger(ctx).Infof("Challenge %s is in voting", challenge.ID)
			common.PromCounters[common.ChallengeTransitionTotal].WithLabelValues(string(entity.ChallengeVoting)).Inc()
		}
	}

	votingPeriod := xcontext.Configs(ctx).Challenge.VotingPeriod
	closed, err := job.challengeRepo.GetEndedBefore(ctx, entity.ChallengeVoting, now.Add(-votingPeriod))
	if err != nil {
		return err
	}

	settled := 0
	for _, challenge := range closed {
		var changed bool
		err := xcontext.Transaction(ctx, func(ctx context.Context) error {
			var err error
			changed, err = job.challengeRepo.UpdateStatus(
				ctx, challenge.ID, entity.ChallengeVoting, entity.ChallengeCompleted)
			if err != nil || !changed {
				return err
			}

			return job.settle(ctx, challenge.ID)
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot complete challenge %s: %v", challenge.ID, err)
			continue
		}

		if changed {
			settled++
			xcontext.Logger(ctx).Infof("Challenge %s is completed", challenge.ID)
			common.PromCounters[common.ChallengeTransitionTotal].WithLabelValues(string(entity.ChallengeCompleted)).Inc()
		}
	}

	if settled > 0 && job.redisClient != nil {
		if err := job.redisClient.Del(ctx, common.RedisKeyLeaderboard); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard cache: %v", err)
		}
	}

	return nil
}

// settle ranks the submissions of a challenge and pays its prize pool to the
// author of the best voted one. A challenge nobody voted on has no winner.
func (job *ChallengeStatusCronJob) settle(ctx context.Context, challengeID string) error {
	if err := aggregateSubmissions(ctx, job.submissionRepo, challengeID); err != nil {
		return err
	}

	submissions, err := job.submissionRepo.GetListByChallengeID(ctx, challengeID)
	if err != nil {
		return err
	}

	if len(submissions) == 0 {
		return nil
	}

	for i, submission := range submissions {
		if err := job.submissionRepo.UpdateRank(ctx, submission.ID, i+1); err != nil {
			return err
		}
	}

	prizePool, err := job.submissionRepo.SumWLDVoted(ctx, challengeID)
	if err != nil {
		return err
	}

	winner := submissions[0]
	if !winner.TotalWLDVoted.IsPositive() {
		winner = entity.Submission{}
	}

	if err := job.voteRepo.Settle(ctx, challengeID, winner.ID); err != nil {
		return err
	}

	if winner.ID != "" {
		if err := job.userRepo.AddWin(ctx, winner.UserID, prizePool); err != nil {
			return err
		}
	}

	losers := []string{}
	for _, submission := range submissions {
		if submission.UserID != winner.UserID {
			losers = append(losers, submission.UserID)
		}
	}

	return job.userRepo.ResetStreak(ctx, losers)
}

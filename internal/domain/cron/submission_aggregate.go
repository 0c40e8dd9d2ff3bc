package cron

import (
	"context"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/xcontext"
)

// SubmissionAggregateCronJob keeps vote_count and total_wld_voted of the
// submissions of running challenges in sync with the votes table.
type SubmissionAggregateCronJob struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
	interval       time.Duration
}

func NewSubmissionAggregateCronJob(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	interval time.Duration,
) *SubmissionAggregateCronJob {
	return &SubmissionAggregateCronJob{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
		interval:       interval,
	}
}

func (job *SubmissionAggregateCronJob) Name() string {
	return "submission_aggregate"
}

func (job *SubmissionAggregateCronJob) Interval() time.Duration {
	return job.interval
}

func (job *SubmissionAggregateCronJob) Do(ctx context.Context) error {
	challenges, err := job.challengeRepo.GetByStatus(ctx, entity.ChallengeActive, entity.ChallengeVoting)
	if err != nil {
		return err
	}

	for _, challenge := range challenges {
		if err := aggregateSubmissions(ctx, job.submissionRepo, challenge.ID); err != nil {
			// One broken challenge must not block the others.
			xcontext.Logger(ctx).Errorf("Cannot aggregate submissions of challenge %s: %v", challenge.ID, err)
		}
	}

	return nil
}

func aggregateSubmissions(
	ctx context.Context, submissionRepo repository.SubmissionRepository, challengeID string,
) error {
	aggregates, err := submissionRepo.Aggregate(ctx, challengeID)
	if err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		if err := submissionRepo.UpdateAggregate(ctx, aggregate); err != nil {
			return err
		}
	}

	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetByUserAndChallenge(ctx context.Context, userID, challengeID string) (*entity.Submission, error)
	GetListByChallengeID(ctx context.Context, challengeID string) ([]entity.Submission, error)
	SumWLDVoted(ctx context.Context, challengeID string) (decimal.Decimal, error)
	Aggregate(ctx context.Context, challengeID string) ([]entity.SubmissionAggregate, error)
	UpdateAggregate(ctx context.Context, data entity.SubmissionAggregate) error
	UpdateRank(ctx context.Context, id string, rank int) error
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var record entity.Submission
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *submissionRepository) GetByUserAndChallenge(
	ctx context.Context, userID, challengeID string,
) (*entity.Submission, error) {
	var record entity.Submission
	err := xcontext.DB(ctx).
		Where("user_id=? AND challenge_id=?", userID, challengeID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetListByChallengeID returns the submissions of a challenge with the
// public profile of their authors, best voted first.
func (r *submissionRepository) GetListByChallengeID(
	ctx context.Context, challengeID string,
) ([]entity.Submission, error) {
	var records []entity.Submission
	err := xcontext.DB(ctx).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "username", "profile_picture_url")
		}).
		Where("challenge_id=?", challengeID).
		Order("total_wld_voted DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *submissionRepository) SumWLDVoted(ctx context.Context, challengeID string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Select("SUM(total_wld_voted)").
		Where("challenge_id=?", challengeID).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// Aggregate computes the vote summary of every submission of a challenge
// from the votes table. Submissions without votes get zero values.
func (r *submissionRepository) Aggregate(
	ctx context.Context, challengeID string,
) ([]entity.SubmissionAggregate, error) {
	const columns = "submissions.id AS submission_id, COUNT(votes.id) AS vote_count, " +
		"COALESCE(SUM(votes.wld_amount), 0) AS total_wld_voted"

	var records []entity.SubmissionAggregate
	err := xcontext.DB(ctx).
		Table("submissions").
		Select(columns).
		Joins("LEFT JOIN votes ON votes.submission_id = submissions.id").
		Where("submissions.challenge_id=?", challengeID).
		Group("submissions.id").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *submissionRepository) UpdateAggregate(ctx context.Context, data entity.SubmissionAggregate) error {
	return xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=?", data.SubmissionID).
		Updates(map[string]any{
			"vote_count":      data.VoteCount,
			"total_wld_voted": data.TotalWLDVoted,
			"updated_at":      time.Now(),
		}).Error
}

func (r *submissionRepository) UpdateRank(ctx context.Context, id string, rank int) error {
	return xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=?", id).
		Updates(map[string]any{"rank": rank, "updated_at": time.Now()}).Error
}

package repository

import (
	"context"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/pkg/xcontext"
)

type VoteFilter struct {
	VoterID      string
	SubmissionID string
	Status       []entity.VoteStatus
}

type VoteRepository interface {
	Create(ctx context.Context, data *entity.Vote) error
	GetByID(ctx context.Context, id string) (*entity.Vote, error)
	GetList(ctx context.Context, filter VoteFilter) ([]entity.Vote, error)
	Settle(ctx context.Context, challengeID, winnerSubmissionID string) error
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *voteRepository) GetByID(ctx context.Context, id string) (*entity.Vote, error) {
	var record entity.Vote
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *voteRepository) GetList(ctx context.Context, filter VoteFilter) ([]entity.Vote, error) {
	tx := xcontext.DB(ctx).Model(&entity.Vote{})
	if filter.VoterID != "" {
		tx = tx.Where("voter_id=?", filter.VoterID)
	}

	if filter.SubmissionID != "" {
		tx = tx.Where("submission_id=?", filter.SubmissionID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	var records []entity.Vote
	if err := tx.Order("created_at DESC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// Settle marks the active votes of a challenge as won when they back the
// winning submission and as lost otherwise. An empty winner loses all.
func (r *voteRepository) Settle(ctx context.Context, challengeID, winnerSubmissionID string) error {
	now := time.Now()
	if winnerSubmissionID != "" {
		err := xcontext.DB(ctx).
			Model(&entity.Vote{}).
			Where("submission_id=? AND status=?", winnerSubmissionID, entity.VoteActive).
			Updates(map[string]any{"status": entity.VoteWon, "updated_at": now}).Error
		if err != nil {
			return err
		}
	}

	submissions := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Select("id").
		Where("challenge_id=?", challengeID)

	return xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Where("submission_id IN (?)", submissions).
		Where("submission_id<>? AND status=?", winnerSubmissionID, entity.VoteActive).
		Updates(map[string]any{"status": entity.VoteLost, "updated_at": now}).Error
}

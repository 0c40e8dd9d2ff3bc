package repository

import (
	"context"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/pkg/xcontext"
)

type ChallengeRepository interface {
	Create(ctx context.Context, data *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)
	GetActive(ctx context.Context, now time.Time) (*entity.Challenge, error)
	GetByStatus(ctx context.Context, status ...entity.ChallengeStatus) ([]entity.Challenge, error)
	GetEndedBefore(ctx context.Context, status entity.ChallengeStatus, before time.Time) ([]entity.Challenge, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.ChallengeStatus) (bool, error)
}

type challengeRepository struct{}

func NewChallengeRepository() *challengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, data *entity.Challenge) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	var record entity.Challenge
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetActive returns the active challenge whose window contains now. The
// latest started one wins if windows overlap.
func (r *challengeRepository) GetActive(ctx context.Context, now time.Time) (*entity.Challenge, error) {
	var record entity.Challenge
	err := xcontext.DB(ctx).
		Where("status=? AND start_time<=? AND end_time>=?", entity.ChallengeActive, now, now).
		Order("start_time DESC").
		Order("id ASC").
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *challengeRepository) GetByStatus(
	ctx context.Context, status ...entity.ChallengeStatus,
) ([]entity.Challenge, error) {
	var records []entity.Challenge
	if err := xcontext.DB(ctx).Where("status IN (?)", status).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *challengeRepository) GetEndedBefore(
	ctx context.Context, status entity.ChallengeStatus, before time.Time,
) ([]entity.Challenge, error) {
	var records []entity.Challenge
	err := xcontext.DB(ctx).
		Where("status=? AND end_time<?", status, before).
		Order("end_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateStatus reports false when the challenge is not in the from status
// anymore, so concurrent transitions apply once.
func (r *challengeRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.ChallengeStatus,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=? AND status=?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

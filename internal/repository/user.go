package repository

import (
	"context"
	"time"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	Upsert(ctx context.Context, data *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByWalletAddress(ctx context.Context, address string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByNullifier(ctx context.Context, nullifier string) (*entity.User, error)
	GetLeaderboard(ctx context.Context, limit int) ([]entity.User, error)
	UpdateWorldID(ctx context.Context, id, nullifier, level string) error
	CompleteOnboarding(ctx context.Context, id string, notificationsEnabled bool) error
	AddWin(ctx context.Context, id string, prize decimal.Decimal) error
	ResetStreak(ctx context.Context, ids []string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

// Upsert inserts data or, when the wallet address already exists, refreshes
// the profile fields set in data. It returns the stored row.
func (r *userRepository) Upsert(ctx context.Context, data *entity.User) (*entity.User, error) {
	updates := []string{"updated_at"}
	if data.Username.Valid {
		updates = append(updates, "username")
	}

	if data.ProfilePictureURL != "" {
		updates = append(updates, "profile_picture_url")
	}

	err := xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(data).Error
	if err != nil {
		return nil, err
	}

	return r.GetByWalletAddress(ctx, data.WalletAddress)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, address string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("wallet_address=?", address).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("username=?", username).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByNullifier(ctx context.Context, nullifier string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("world_id_nullifier=?", nullifier).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetLeaderboard(ctx context.Context, limit int) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Order("total_wld_earned DESC").
		Order("total_wins DESC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) UpdateWorldID(ctx context.Context, id, nullifier, level string) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(map[string]any{
		"world_id_verified":  true,
		"world_id_nullifier": nullifier,
		"verification_level": level,
		"updated_at":         time.Now(),
	}).Error
}

func (r *userRepository) CompleteOnboarding(ctx context.Context, id string, notificationsEnabled bool) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(map[string]any{
		"onboarding_completed":  true,
		"notifications_enabled": notificationsEnabled,
		"updated_at":            time.Now(),
	}).Error
}

func (r *userRepository) AddWin(ctx context.Context, id string, prize decimal.Decimal) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(map[string]any{
		"total_wins":       gorm.Expr("total_wins + 1"),
		"current_streak":   gorm.Expr("current_streak + 1"),
		"total_wld_earned": gorm.Expr("total_wld_earned + ?", prize),
		"updated_at":       time.Now(),
	}).Error
}

func (r *userRepository) ResetStreak(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id IN (?)", ids).Updates(map[string]any{
		"current_streak": 0,
		"updated_at":     time.Now(),
	}).Error
}

package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/api/worldid"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/ethutil"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errWorldIDTaken = errorx.New(errorx.BadRequest, "This World ID is already verified with another wallet")

type VerifyDomain interface {
	Verify(context.Context, *model.VerifyRequest) (*model.VerifyResponse, error)
}

type verifyDomain struct {
	userRepo        repository.UserRepository
	worldIDEndpoint worldid.IEndpoint
}

func NewVerifyDomain(
	userRepo repository.UserRepository,
	worldIDEndpoint worldid.IEndpoint,
) *verifyDomain {
	return &verifyDomain{
		userRepo:        userRepo,
		worldIDEndpoint: worldIDEndpoint,
	}
}

func (d *verifyDomain) Verify(
	ctx context.Context, req *model.VerifyRequest,
) (*model.VerifyResponse, error) {
	p := req.Payload
	if p.Proof == "" || p.MerkleRoot == "" || p.NullifierHash == "" || p.VerificationLevel == "" || req.Action == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	result, err := d.worldIDEndpoint.Verify(ctx, worldid.Proof{
		Proof:             p.Proof,
		MerkleRoot:        p.MerkleRoot,
		NullifierHash:     p.NullifierHash,
		VerificationLevel: p.VerificationLevel,
	}, req.Action, req.Signal)
	if err != nil {
		var rejected *worldid.RejectedError
		if errors.As(err, &rejected) {
			return nil, errorx.New(errorx.BadRequest, "%s", rejected.Error())
		}

		xcontext.Logger(ctx).Errorf("Cannot verify world id proof: %v", err)
		return nil, errorx.Unknown
	}

	if !result.Success {
		return nil, errorx.New(errorx.BadRequest, "Verification failed")
	}

	resp := &model.VerifyResponse{
		Success:           true,
		Action:            req.Action,
		NullifierHash:     result.NullifierHash,
		VerificationLevel: result.VerificationLevel,
	}

	walletAddress, err := d.resolveWallet(ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}

	if walletAddress == "" {
		return resp, nil
	}
	resp.WalletAddress = walletAddress

	owner, err := d.userRepo.GetByNullifier(ctx, result.NullifierHash)
	switch {
	case err == nil && owner.WalletAddress != walletAddress:
		return nil, errWorldIDTaken
	case err == nil:
		return resp, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		xcontext.Logger(ctx).Errorf("Cannot get user by nullifier: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.attachWorldID(ctx, walletAddress, result); err != nil {
		return nil, err
	}

	return resp, nil
}

// resolveWallet prefers the wallet sent in the request and falls back to the
// wallet of the signed in user. It returns an empty address for anonymous
// requests.
func (d *verifyDomain) resolveWallet(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return ethutil.NormalizeAddress(requested), nil
	}

	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return "", nil
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get session user: %v", err)
		return "", errorx.Unknown
	}

	return user.WalletAddress, nil
}

func (d *verifyDomain) attachWorldID(ctx context.Context, walletAddress string, result *worldid.Result) error {
	user, err := d.userRepo.GetByWalletAddress(ctx, walletAddress)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by wallet: %v", err)
		return errorx.Unknown
	}

	if user == nil {
		err = d.userRepo.Create(ctx, &entity.User{
			Base:              entity.Base{ID: uuid.NewString()},
			WalletAddress:     walletAddress,
			TotalWLDEarned:    decimal.Zero,
			WorldIDVerified:   true,
			WorldIDNullifier:  sql.NullString{Valid: true, String: result.NullifierHash},
			VerificationLevel: result.VerificationLevel,
		})
	} else {
		err = d.userRepo.UpdateWorldID(ctx, user.ID, result.NullifierHash, result.VerificationLevel)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errWorldIDTaken
		}

		xcontext.Logger(ctx).Errorf("Cannot save world id of user: %v", err)
		return errorx.Unknown
	}

	return nil
}

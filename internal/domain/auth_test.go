package domain

import (
	"crypto/ecdsa"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/testutil"
	"github.com/pngfun/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func signInPayload(t *testing.T, key *ecdsa.PrivateKey, address, nonce, extra string) model.WalletAuthPayload {
	message := fmt.Sprintf("png.fun wants you to sign in with your Ethereum account:\n"+
		"%s\n\n"+
		"Sign in to PNG.FUN\n\n"+
		"URI: https://png.fun\n"+
		"Version: 1\n"+
		"Chain ID: 480\n"+
		"Nonce: %s\n"+
		"Issued At: 2024-05-01T10:00:00Z%s", address, nonce, extra)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	signature[ethcrypto.RecoveryIDOffset] += 27

	return model.WalletAuthPayload{
		Status:    "success",
		Message:   message,
		Signature: hexutil.Encode(signature),
		Address:   address,
		Version:   2,
	}
}

func Test_authDomain_GetNonce(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.GetNonce(ctx, &model.GetNonceRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Nonce, 32)
	require.Equal(t, map[string]any{"nonce": resp.Nonce}, resp.SessionInfo())

	other, err := domain.GetNonce(ctx, &model.GetNonceRequest{})
	require.NoError(t, err)
	require.NotEqual(t, resp.Nonce, other.Nonce)
}

func Test_authDomain_CompleteSIWE(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo)

	resp, err := domain.CompleteSIWE(ctx, &model.CompleteSIWERequest{
		Payload:           signInPayload(t, key, address, "nonce1", ""),
		Nonce:             "nonce1",
		Username:          "dave",
		ProfilePictureURL: "https://cdn.png.fun/dave.png",
		SessionNonce:      "nonce1",
	})
	require.NoError(t, err)
	require.Equal(t, "success", resp.Status)
	require.True(t, resp.IsValid)
	require.Equal(t, address, resp.Address)

	user, err := userRepo.GetByWalletAddress(ctx, address)
	require.NoError(t, err)
	require.Equal(t, "dave", user.Username.String)
	require.Equal(t, "https://cdn.png.fun/dave.png", user.ProfilePictureURL)
	require.False(t, user.WorldIDVerified)

	var token model.SessionToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.SessionToken, &token))
	require.Equal(t, model.SessionToken{UserID: user.ID, WalletAddress: address}, token)

	// Signing in again keeps the row and its id.
	resp, err = domain.CompleteSIWE(ctx, &model.CompleteSIWERequest{
		Payload:      signInPayload(t, key, address, "nonce2", ""),
		Nonce:        "nonce2",
		Username:     "dave2",
		SessionNonce: "nonce2",
	})
	require.NoError(t, err)

	updated, err := userRepo.GetByWalletAddress(ctx, address)
	require.NoError(t, err)
	require.Equal(t, user.ID, updated.ID)
	require.Equal(t, "dave2", updated.Username.String)
	require.Equal(t, "https://cdn.png.fun/dave.png", updated.ProfilePictureURL)
}

func Test_authDomain_CompleteSIWE_Failed(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *model.CompleteSIWERequest
		wantErr error
	}{
		{
			name: "no session nonce",
			req: &model.CompleteSIWERequest{
				Payload: signInPayload(t, key, address, "nonce1", ""),
				Nonce:   "nonce1",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid nonce"),
		},
		{
			name: "nonce mismatch",
			req: &model.CompleteSIWERequest{
				Payload:      signInPayload(t, key, address, "nonce1", ""),
				Nonce:        "nonce1",
				SessionNonce: "nonce2",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid nonce"),
		},
		{
			name: "message for another nonce",
			req: &model.CompleteSIWERequest{
				Payload:      signInPayload(t, key, address, "nonce2", ""),
				Nonce:        "nonce1",
				SessionNonce: "nonce1",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid signature"),
		},
		{
			name: "signed by another key",
			req: &model.CompleteSIWERequest{
				Payload:      signInPayload(t, otherKey, address, "nonce1", ""),
				Nonce:        "nonce1",
				SessionNonce: "nonce1",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid signature"),
		},
		{
			name: "expired message",
			req: &model.CompleteSIWERequest{
				Payload:      signInPayload(t, key, address, "nonce1", "\nExpiration Time: 2024-05-02T10:00:00Z"),
				Nonce:        "nonce1",
				SessionNonce: "nonce1",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid signature"),
		},
		{
			name: "garbage message",
			req: &model.CompleteSIWERequest{
				Payload:      model.WalletAuthPayload{Message: "hello", Signature: "0x00", Address: address},
				Nonce:        "nonce1",
				SessionNonce: "nonce1",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid signature"),
		},
		{
			name: "username taken",
			req: &model.CompleteSIWERequest{
				Payload:      signInPayload(t, key, address, "nonce1", ""),
				Nonce:        "nonce1",
				Username:     testutil.User1.Username.String,
				SessionNonce: "nonce1",
			},
			wantErr: errorx.New(errorx.AlreadyExists, "Username is already taken"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)

			_, err := NewAuthDomain(repository.NewUserRepository()).CompleteSIWE(ctx, tt.req)
			require.Equal(t, tt.wantErr, err)
		})
	}
}

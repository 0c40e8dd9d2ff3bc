package model

import (
	"context"
	"net/http"
	"time"

	"github.com/pngfun/backend/pkg/xcontext"
)

// SessionToken is the object carried by the session cookie.
type SessionToken struct {
	UserID        string `json:"uid"`
	WalletAddress string `json:"wallet"`
}

type GetNonceRequest struct{}

type GetNonceResponse struct {
	Nonce string `json:"nonce"`
}

func (r *GetNonceResponse) SessionInfo() map[string]any {
	return map[string]any{"nonce": r.Nonce}
}

type WalletAuthPayload struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Address   string `json:"address"`
	Version   int    `json:"version"`
}

type CompleteSIWERequest struct {
	Payload           WalletAuthPayload `json:"payload"`
	Nonce             string            `json:"nonce"`
	Username          string            `json:"username"`
	ProfilePictureURL string            `json:"profilePictureUrl"`

	SessionNonce string `json:"-" session:"nonce,delete"`
}

type CompleteSIWEResponse struct {
	Status  string `json:"status"`
	IsValid bool   `json:"isValid"`
	Address string `json:"address"`

	SessionToken string `json:"-"`
}

func (r *CompleteSIWEResponse) CookieInfo(ctx context.Context) []http.Cookie {
	cfg := xcontext.Configs(ctx).Auth.SessionToken
	return []http.Cookie{
		{
			Name:     cfg.Name,
			Value:    r.SessionToken,
			Path:     "/",
			Expires:  time.Now().Add(cfg.Expiration),
			MaxAge:   int(cfg.Expiration.Seconds()),
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

type WorldIDProof struct {
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
}

type VerifyRequest struct {
	Payload       WorldIDProof `json:"payload"`
	Action        string       `json:"action"`
	Signal        string       `json:"signal"`
	WalletAddress string       `json:"walletAddress" validate:"omitempty,eth_addr"`
}

type VerifyResponse struct {
	Success           bool   `json:"success"`
	Action            string `json:"action"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
	WalletAddress     string `json:"wallet_address,omitempty"`
}

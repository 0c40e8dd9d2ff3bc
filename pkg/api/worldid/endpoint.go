package worldid

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pngfun/backend/config"
	"github.com/pngfun/backend/pkg/api"
)

const userAgent = "png.fun-backend/1.0"

type Endpoint struct {
	domain string
	appID  string

	apiGenerator api.Generator
}

func New(cfg config.WorldIDConfigs) *Endpoint {
	return &Endpoint{
		domain:       cfg.Endpoint,
		appID:        cfg.AppID,
		apiGenerator: api.NewGenerator(),
	}
}

func (e *Endpoint) Verify(ctx context.Context, proof Proof, action, signal string) (*Result, error) {
	resp, err := e.apiGenerator.New(e.domain, "/api/v2/verify/%s", e.appID).
		Header("User-Agent", userAgent).
		Body(api.JSON{
			"proof":              proof.Proof,
			"merkle_root":        proof.MerkleRoot,
			"nullifier_hash":     proof.NullifierHash,
			"verification_level": proof.VerificationLevel,
			"action":             action,
			"signal_hash":        HashToField(signal),
		}).
		POST(ctx)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		rejected := &RejectedError{}
		if err := resp.Body.Decode(rejected); err != nil {
			return nil, err
		}

		if rejected.Code == "" {
			return nil, fmt.Errorf("unexpected status %d from verify api", resp.Code)
		}

		return nil, rejected
	}

	result := &Result{}
	if err := resp.Body.Decode(result); err != nil {
		return nil, err
	}

	if result.NullifierHash == "" {
		result.NullifierHash = proof.NullifierHash
	}

	if result.VerificationLevel == "" {
		result.VerificationLevel = proof.VerificationLevel
	}

	return result, nil
}

// HashToField hashes the signal into the scalar field used by the proof
// circuit: keccak256 shifted right by 8 bits, as 32-byte 0x hex. A 0x hex
// signal, such as a wallet address, is hashed as the bytes it encodes.
func HashToField(signal string) string {
	input, err := hexutil.Decode(signal)
	if err != nil {
		input = []byte(signal)
	}

	hash := new(big.Int).SetBytes(crypto.Keccak256(input))
	hash.Rsh(hash, 8)
	return hexutil.Encode(math.PaddedBigBytes(hash, 32))
}

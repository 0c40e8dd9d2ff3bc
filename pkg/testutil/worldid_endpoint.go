package testutil

import (
	"context"
	"errors"

	"github.com/pngfun/backend/pkg/api/worldid"
)

type MockWorldIDEndpoint struct {
	VerifyFunc func(ctx context.Context, proof worldid.Proof, action, signal string) (*worldid.Result, error)
}

func (e *MockWorldIDEndpoint) Verify(
	ctx context.Context, proof worldid.Proof, action, signal string,
) (*worldid.Result, error) {
	if e.VerifyFunc != nil {
		return e.VerifyFunc(ctx, proof, action, signal)
	}

	return nil, errors.New("not implemented")
}

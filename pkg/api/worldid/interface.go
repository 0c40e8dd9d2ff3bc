package worldid

import "context"

type IEndpoint interface {
	Verify(ctx context.Context, proof Proof, action, signal string) (*Result, error)
}

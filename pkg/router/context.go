package router

import "context"

// requestContext takes cancellation and deadline from the request and falls
// back to the server context for values.
type requestContext struct {
	context.Context
	values context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.values.Value(key)
}

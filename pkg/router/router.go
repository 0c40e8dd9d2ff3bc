package router

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pngfun/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. It may enrich the context
// or abort the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, even if the request failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx      context.Context
	engine   *gin.Engine
	inner    gin.IRouter
	validate *validator.Validate

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers receive the values of ctx (configs,
// logger, database...) together with the request cancellation.
func New(ctx context.Context) *Router {
	if xcontext.Configs(ctx).IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	engine := gin.New()
	if err := engine.SetTrustedProxies(xcontext.Configs(ctx).ApiServer.TrustedProxies); err != nil {
		xcontext.Logger(ctx).Errorf("Invalid trusted proxies, trusting none: %v", err)
		_ = engine.SetTrustedProxies(nil)
	}

	return &Router{
		ctx:      ctx,
		engine:   engine,
		inner:    engine,
		validate: validate,
	}
}

// Branch returns a router sharing the routes of r. Middlewares added to the
// branch do not affect r.
func (r *Router) Branch() *Router {
	return r.Group("")
}

func (r *Router) Group(pattern string) *Router {
	clone := *r
	clone.inner = r.inner.Group(pattern)
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// Handle mounts a plain http.Handler, bypassing the middlewares.
func (r *Router) Handle(method, pattern string, handler http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

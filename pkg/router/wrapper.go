package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	return func(g *gin.Context) {
		var ctx context.Context = requestContext{Context: g.Request.Context(), values: r.ctx}
		ctx = xcontext.WithHTTPRequest(ctx, g.Request)
		ctx = xcontext.WithHTTPWriter(ctx, g.Writer)
		ctx = xcontext.WithClientIP(ctx, g.ClientIP())

		defer func() {
			if rec := recover(); rec != nil {
				xcontext.Logger(ctx).Errorf("Panic when handling %s: %v\n%s", g.Request.URL.Path, rec, debug.Stack())
				ctx = xcontext.WithError(ctx, errorx.Unknown)
				writeError(g, errorx.Unknown)
			}

			for _, closer := range closers {
				closer(ctx)
			}
		}()

		resp, err := func() (*Response, error) {
			for _, m := range befores {
				newCtx, err := m(ctx)
				if err != nil {
					return nil, err
				}
				ctx = newCtx
			}

			var req Request
			if err := bind(g, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Invalid request body")
			}

			if err := parseSessionFields(ctx, &req); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot read session: %v", err)
				return nil, errorx.Unknown
			}

			if err := validateRequest(ctx, r.validate, &req); err != nil {
				return nil, err
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return nil, err
			}

			ctx = xcontext.WithResponse(ctx, resp)
			for _, m := range afters {
				newCtx, err := m(ctx)
				if err != nil {
					return nil, err
				}
				ctx = newCtx
			}

			return resp, nil
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(g, err)
			return
		}

		if resp == nil {
			g.Status(http.StatusOK)
			return
		}

		g.JSON(http.StatusOK, resp)
	}
}

func bind(g *gin.Context, method string, req any) error {
	switch method {
	case http.MethodGet:
		return g.ShouldBindQuery(req)
	case http.MethodPost:
		if err := g.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported method %s", method)
	}
}

// parseSessionFields fills string fields tagged `session:"key"` from the
// request session. With `session:"key,delete"` the key is also removed from
// the session, which is saved before the handler runs.
func parseSessionFields(ctx context.Context, req any) error {
	value := reflect.ValueOf(req).Elem()
	if value.Kind() != reflect.Struct {
		return nil
	}

	var deleted bool
	var session interface {
		Save(*http.Request, http.ResponseWriter) error
	}
	for i := 0; i < value.NumField(); i++ {
		tag, ok := value.Type().Field(i).Tag.Lookup("session")
		if !ok {
			continue
		}

		store := xcontext.SessionStore(ctx)
		if store == nil {
			return errors.New("no session store")
		}

		sess, err := store.Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
		if sess == nil {
			return err
		}

		if err != nil {
			// A cookie signed with an old secret yields an error together with
			// a fresh session, which is fine to use.
			xcontext.Logger(ctx).Debugf("Cannot decode session: %v", err)
		}
		session = sess

		key, option, _ := strings.Cut(tag, ",")
		if v, ok := sess.Values[key].(string); ok && value.Field(i).Kind() == reflect.String {
			value.Field(i).SetString(v)
		}

		if option == "delete" {
			delete(sess.Values, key)
			deleted = true
		}
	}

	if deleted && session != nil {
		return session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx))
	}

	return nil
}

func validateRequest(ctx context.Context, validate *validator.Validate, req any) error {
	if reflect.ValueOf(req).Elem().Kind() != reflect.Struct {
		return nil
	}

	err := validate.StructCtx(ctx, req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return errorx.New(errorx.BadRequest, "Invalid %s", validationErrs[0].Field())
	}

	xcontext.Logger(ctx).Errorf("Cannot validate request: %v", err)
	return errorx.Unknown
}

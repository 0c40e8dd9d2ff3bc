package router

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pngfun/backend/pkg/errorx"
)

type errorResponse struct {
	Code  errorx.Code `json:"code"`
	Error string      `json:"error"`
}

func newErrorResponse(err error) errorResponse {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return errorResponse{Code: errx.Code, Error: errx.Message}
	}

	return errorResponse{Code: errorx.Unknown.Code, Error: errorx.Unknown.Message}
}

func writeError(g *gin.Context, err error) {
	if g.Writer.Written() {
		return
	}

	g.JSON(errorx.HTTPStatus(err), newErrorResponse(err))
}

package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"status"`
	ErrorMsg   string `json:"error"`
	RequestID  string `json:"request_id,omitempty"`

	err error
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
		err:        err,
	}
}

func ErrUnauthorized(message string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   message,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   "wrong credentials",
		err:        err,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		ErrorMsg:   err.Error(),
		err:        err,
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		ErrorMsg:   fmt.Sprintf("%v with %v %v is not found", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		ErrorMsg:   err.Error(),
		err:        err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		ErrorMsg:   "internal server error",
		err:        err,
	}
}

// RenderErr writes the error payload. Internal failures keep their cause out
// of the response body; it goes to the log instead.
func RenderErr(ctx *gin.Context, err *Err) {
	err.RequestID = requestid.Get(ctx)

	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", err.RequestID),
			zap.Int("status", err.StatusCode),
			zap.Error(err.err))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/depbatch/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError answers with the status and envelope of err. Bodies over
// the size limit map to 413, errors that are not AppErrors to 500.
func RespondWithError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		appErr := errors.New(errors.ErrCodePayloadTooLarge, "Request body is too large.", http.StatusRequestEntityTooLarge).
			WithDetail("limit", tooLarge.Limit)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	appErr := errors.Wrap(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondNotFound sends a 404 for an unknown resource.
func RespondNotFound(c *gin.Context, resource, id string) {
	RespondWithError(c, errors.NotFound(resource, id))
}

// RespondMethodNotAllowed sends a 405.
func RespondMethodNotAllowed(c *gin.Context) {
	appErr := errors.New(errors.ErrCodeInvalidInput, "Method not allowed.", http.StatusMethodNotAllowed).
		WithDetail("method", c.Request.Method)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

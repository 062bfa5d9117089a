package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Fields  any    `json:"fields,omitempty"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithFieldErrors attaches per-field rejection details so the caller
// can re-render a form with the offending attributes marked.
func RespondWithFieldErrors(c *gin.Context, statusCode int, customMessage string, fields any) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
		Fields:  fields,
	})
}

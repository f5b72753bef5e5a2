package response

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-gateway/internal/domain"
)

// Error writes err as an ErrorBody with the status code of its kind.
// Errors that are not *domain.Error are reported generically as upstream errors.
func Error(c echo.Context, err error) error {
	gwErr := domain.AsError(err)
	if gwErr == nil {
		gwErr = domain.NewUpstreamError(0, MsgInternalError, nil)
	}
	return c.JSON(gwErr.Kind.HTTPStatus(), &ErrorBody{
		Error: gwErr.Message,
		Code:  string(gwErr.Kind),
	})
}

// BadRequest writes a 400 invalid_input response with the given message.
func BadRequest(c echo.Context, message string) error {
	return Error(c, domain.NewInvalidInput("%s", message))
}

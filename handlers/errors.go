package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// toHTTPError converts a service error into an echo HTTP error. Errors
// outside the service taxonomy pass through unchanged.
func toHTTPError(err error) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		return err
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	return echo.NewHTTPError(status, svcErr.Message).SetInternal(err)
}

// ErrorHandler renders every error as {"error": message}. Unexpected errors
// become a generic 500 and are logged with the request id.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := toHTTPError(err).(*echo.HTTPError)
	if !ok {
		zap.L().Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
		he = echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	message := fmt.Sprint(he.Message)
	if he.Code >= http.StatusInternalServerError {
		span := trace.SpanFromContext(c.Request().Context())
		span.SetStatus(codes.Error, message)
		if he.Internal != nil {
			span.RecordError(he.Internal)
			zap.L().Error("request failed",
				zap.Int("status", he.Code),
				zap.Error(he.Internal),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("trace_id", span.SpanContext().TraceID().String()),
			)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, map[string]string{"error": message})
	}
	if err != nil {
		zap.L().Warn("failed to write error response", zap.Error(err))
	}
}

// parseID reads a numeric path parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func parseID(c echo.Context, name, notFound string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, notFound)
	}
	return uint(id), nil
}

// queryID reads an optional numeric query parameter; empty means zero
func queryID(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
	}
	return uint(id), nil
}

// bindJSON decodes the request body, reporting malformed JSON as 400
func bindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

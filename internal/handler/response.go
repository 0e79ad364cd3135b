package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timetrack/internal/auth"
	"timetrack/internal/errors"
	"timetrack/internal/model"
)

// ClaimsContextKey is where the JWT gate stores the caller's *auth.Claims.
const ClaimsContextKey = "user"

// SuccessResponse acknowledges a write.
type SuccessResponse struct {
	Success string `json:"success"`
}

func success(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, SuccessResponse{Success: message})
}

// fail shapes known domain errors into a 422 body. Anything else goes to
// echo's error handler untouched.
func fail(err error) error {
	if httpErr, ok := errors.MapErrorToHTTP(err); ok {
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return err
}

func invalid(message string) error {
	return fail(errors.NewValidationError(message))
}

// bindRequest decodes the body and runs struct validation. Bad JSON is a 400;
// failed constraints are 422 with the first failing field's message.
func bindRequest(c echo.Context, req interface{}, messages map[string]string) error {
	if err := bindBody(c, req); err != nil {
		return err
	}
	return validateRequest(c, req, messages)
}

func bindBody(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	return nil
}

func validateRequest(c echo.Context, req interface{}, messages map[string]string) error {
	if err := c.Validate(req); err != nil {
		return invalid(validationMessage(err, messages))
	}
	return nil
}

func validationMessage(err error, messages map[string]string) string {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		if msg, ok := messages[fieldErrs[0].Field()]; ok {
			return msg
		}
		return "Invalid " + fieldErrs[0].Field() + "."
	}
	return err.Error()
}

// currentUser returns the id of the authenticated caller.
func currentUser(c echo.Context) (uuid.UUID, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return uuid.Nil, echo.ErrUnauthorized
	}
	info, err := claims.Info()
	if err != nil {
		return uuid.Nil, echo.ErrUnauthorized
	}
	return info.ID, nil
}

// parseID parses an optional id. Empty input is uuid.Nil so the service can
// report the missing field.
func parseID(raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// parseIDList decodes a JSON array of ids as sent in query strings, e.g. events=["..."].
func parseIDList(raw string) ([]uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// parseTime accepts RFC 3339 or integer Unix milliseconds.
func parseTime(raw string) (time.Time, bool) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	return t, err == nil
}

// parseTimeValue handles a decoded JSON value: a string or a number of milliseconds.
func parseTimeValue(v interface{}) (time.Time, bool) {
	switch tv := v.(type) {
	case nil:
		return time.Time{}, true
	case string:
		if tv == "" {
			return time.Time{}, true
		}
		return parseTime(tv)
	case float64:
		return time.UnixMilli(int64(tv)), true
	default:
		return time.Time{}, false
	}
}

// parseBound parses an optional range bound from the query string.
func parseBound(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, ok := parseTime(raw)
	if !ok {
		return nil, false
	}
	return &t, true
}

// parsePage reads start and pageSize. Invalid values become 0 and are defaulted by the service.
func parsePage(c echo.Context) model.Page {
	offset, _ := strconv.Atoi(c.QueryParam("start"))
	limit, _ := strconv.Atoi(c.QueryParam("pageSize"))
	return model.Page{Offset: offset, Limit: limit}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"timetrack/internal/model"
	"timetrack/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// SubmitEventRequest represents an event submission.
type SubmitEventRequest struct {
	Category string `json:"category"`
}

// InsertEventRequest represents a back-dated event. Time is RFC 3339 or Unix milliseconds.
type InsertEventRequest struct {
	Time     interface{} `json:"time" swaggertype:"string"`
	Category string      `json:"category"`
}

// Submit godoc
// @Summary Record an occurrence of a category
// @Description Increments the latest event when it has the same category, otherwise starts a new event.
// @Tags events
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body SubmitEventRequest true "Event"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /events/submit [post]
func (h *EventHandler) Submit(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req SubmitEventRequest
	if err := bindRequest(c, &req, nil); err != nil {
		return err
	}
	categoryID, ok := parseID(req.Category)
	if !ok {
		return invalid("Invalid category.")
	}

	if _, err := h.eventService.Submit(c.Request().Context(), userID, categoryID); err != nil {
		return fail(err)
	}
	return success(c, "Event recorded")
}

// Insert godoc
// @Summary Record an event at a given time
// @Tags events
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body InsertEventRequest true "Event"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /events/insert [post]
func (h *EventHandler) Insert(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req InsertEventRequest
	if err := bindRequest(c, &req, nil); err != nil {
		return err
	}
	at, ok := parseTimeValue(req.Time)
	if !ok {
		return invalid("You must include an event time.")
	}
	categoryID, ok := parseID(req.Category)
	if !ok {
		return invalid("Invalid category.")
	}

	if _, err := h.eventService.Insert(c.Request().Context(), userID, at, categoryID); err != nil {
		return fail(err)
	}
	return success(c, "Event inserted")
}

// Remove godoc
// @Summary Delete events by id set or update-time range
// @Tags events
// @Produce json
// @Security JWTAuth
// @Param begin query string false "Inclusive lower bound (RFC 3339 or Unix ms)"
// @Param end query string false "Inclusive upper bound (RFC 3339 or Unix ms)"
// @Param events query string false "JSON array of event ids"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /events/remove [delete]
func (h *EventHandler) Remove(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	filter, err := rangeFilter(c)
	if err != nil {
		return err
	}
	ids, ok := parseIDList(c.QueryParam("events"))
	if !ok {
		return invalid("Invalid events parameter.")
	}
	filter.IDs = ids

	if _, err := h.eventService.Remove(c.Request().Context(), userID, filter); err != nil {
		return fail(err)
	}
	return success(c, "Events removed")
}

// Query godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security JWTAuth
// @Param begin query string false "Inclusive lower bound (RFC 3339 or Unix ms)"
// @Param end query string false "Inclusive upper bound (RFC 3339 or Unix ms)"
// @Param categories query string false "JSON array of category ids"
// @Param start query int false "Offset"
// @Param pageSize query int false "Page size"
// @Success 200 {array} model.Event
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /events/query [get]
func (h *EventHandler) Query(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	filter, err := rangeFilter(c)
	if err != nil {
		return err
	}
	categories, ok := parseIDList(c.QueryParam("categories"))
	if !ok {
		return invalid("Invalid categories parameter.")
	}
	filter.Categories = categories

	events, err := h.eventService.Query(c.Request().Context(), userID, filter, parsePage(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, events)
}

func rangeFilter(c echo.Context) (model.EventFilter, error) {
	var filter model.EventFilter
	begin, ok := parseBound(c.QueryParam("begin"))
	if !ok {
		return filter, invalid("Invalid begin time.")
	}
	end, ok := parseBound(c.QueryParam("end"))
	if !ok {
		return filter, invalid("Invalid end time.")
	}
	filter.Begin, filter.End = begin, end
	return filter, nil
}

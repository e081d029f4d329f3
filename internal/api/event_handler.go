package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventHandler holds the event service dependency.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// --- DTOs ---

// EventRequest is the JSON body for creating or updating an ad hoc event.
// Date is a calendar day ("2006-01-02"); StartTime, when given, is the exact
// RFC 3339 start moment.
type EventRequest struct {
	Title     string     `json:"title"`
	Date      string     `json:"date" binding:"required"`
	StartTime *time.Time `json:"startTime"`
	Notes     string     `json:"notes"`
}

// ScheduleFromTemplateRequest schedules an event from a saved template.
type ScheduleFromTemplateRequest struct {
	TemplateID string     `json:"templateId" binding:"required"`
	Date       string     `json:"date" binding:"required"`
	StartTime  *time.Time `json:"startTime"`
}

// EventReorderRequest reorders the events of one day.
type EventReorderRequest struct {
	Day  string `json:"day" binding:"required"`
	From []int  `json:"from" binding:"required,min=1"`
	To   *int   `json:"to" binding:"required"`
}

// EventResponse is the DTO for returning event details. DisplayTitle is the
// resolved title (own title, else template title, else the placeholder).
type EventResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title,omitempty"`
	DisplayTitle string     `json:"displayTitle"`
	Date         string     `json:"date"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Order        int        `json:"order"`
	TemplateID   string     `json:"templateId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// MapEventViewToResponse converts a service.EventView to its response DTO.
func MapEventViewToResponse(view *service.EventView) EventResponse {
	if view == nil {
		return EventResponse{}
	}
	e := view.Event
	resp := EventResponse{
		ID:           e.ID.Hex(),
		Title:        e.Title,
		DisplayTitle: view.DisplayTitle,
		Date:         e.Date.Format(service.DayKeyFormat),
		StartTime:    e.StartTime,
		Notes:        e.Notes,
		Order:        e.Order,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.TemplateID != nil {
		resp.TemplateID = e.TemplateID.Hex()
	}
	return resp
}

// MapEventViewsToResponse converts a slice of event views to response DTOs.
func MapEventViewsToResponse(views []service.EventView) []EventResponse {
	responses := make([]EventResponse, len(views))
	for i := range views {
		responses[i] = MapEventViewToResponse(&views[i])
	}
	return responses
}

// parseDay parses a "2006-01-02" calendar day, aborting with 400 on bad input.
func parseDay(c *gin.Context, value string) (time.Time, bool) {
	day, err := time.Parse(service.DayKeyFormat, value)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

// --- Handler Methods ---

// CreateEvent schedules an ad hoc workout on a day.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, ok := parseDay(c, req.Date)
	if !ok {
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), req.Title, day, req.StartTime, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view := service.EventView{Event: *event, DisplayTitle: event.DisplayTitle(nil)}
	c.JSON(http.StatusCreated, MapEventViewToResponse(&view))
}

// ScheduleFromTemplate schedules a workout from a saved template. The event
// holds a live reference to the template; its own exercise list starts empty.
func (h *EventHandler) ScheduleFromTemplate(c *gin.Context) {
	var req ScheduleFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid templateId format")
		return
	}
	day, ok := parseDay(c, req.Date)
	if !ok {
		return
	}

	event, err := h.eventService.ScheduleFromTemplate(c.Request.Context(), templateID, day, req.StartTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Re-read through the service so the display title reflects the template.
	view, err := h.eventService.GetEventByID(c.Request.Context(), event.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapEventViewToResponse(view))
}

// ListEvents answers the calendar queries: ?day=YYYY-MM-DD for one day's
// events in order, or ?from=&to= for a day-grouped range (month views).
func (h *EventHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	if dayStr := c.Query("day"); dayStr != "" {
		day, ok := parseDay(c, dayStr)
		if !ok {
			return
		}
		views, err := h.eventService.EventsOnDay(ctx, day)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapEventViewsToResponse(views))
		return
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" || toStr == "" {
		abortWithError(c, http.StatusBadRequest, "either day or from+to query parameters are required")
		return
	}
	from, ok := parseDay(c, fromStr)
	if !ok {
		return
	}
	to, ok := parseDay(c, toStr)
	if !ok {
		return
	}

	grouped, err := h.eventService.EventsInRange(ctx, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make(map[string][]EventResponse, len(grouped))
	for day, views := range grouped {
		response[day] = MapEventViewsToResponse(views)
	}
	c.JSON(http.StatusOK, response)
}

// GetEvent returns one event with its display title resolved.
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.eventService.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapEventViewToResponse(view))
}

// UpdateEvent edits an event. Moving it to a different day re-indexes both
// the day it left and the day it joins.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, ok := parseDay(c, req.Date)
	if !ok {
		return
	}

	if _, err := h.eventService.UpdateEvent(c.Request.Context(), eventID, req.Title, day, req.StartTime, req.Notes); err != nil {
		respondServiceError(c, err)
		return
	}

	view, err := h.eventService.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapEventViewToResponse(view))
}

// DeleteEvent removes an event and cascades through its exercise entries and
// their sets.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), eventID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderEvents moves events within one day.
func (h *EventHandler) ReorderEvents(c *gin.Context) {
	var req EventReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, ok := parseDay(c, req.Day)
	if !ok {
		return
	}

	if err := h.eventService.ReorderEvents(c.Request.Context(), day, req.From, *req.To); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

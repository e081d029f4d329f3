package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LinkHandler holds the link service dependency. It serves both the
// owner-scoped routes (exercises of a template or event) and the
// entry-scoped routes (targets and sets of one entry).
type LinkHandler struct {
	linkService service.LinkService
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(linkService service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// --- DTOs ---

// AttachExerciseRequest adds a catalog exercise to a template or event.
type AttachExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// LinkUpdateRequest edits an entry's notes and target settings.
type LinkUpdateRequest struct {
	Notes      string `json:"notes"`
	TargetMode string `json:"targetMode" binding:"required"`
	TargetNote string `json:"targetNote"`
}

// SetMetricsRequest carries the optional numeric fields of a set. Absent
// fields stay nil.
type SetMetricsRequest struct {
	Weight     *float64 `json:"weight"`
	Reps       *int     `json:"reps"`
	RPE        *float64 `json:"rpe"`
	Duration   *float64 `json:"duration"`
	Distance   *float64 `json:"distance"`
	Resistance *float64 `json:"resistance"`
	HeartRate  *int     `json:"heartRate"`
}

// SetRecordUpdateRequest logs the actuals of a performed set.
type SetRecordUpdateRequest struct {
	SetMetricsRequest
	IsTracked *bool `json:"isTracked"`
}

func (r *SetMetricsRequest) toMetrics() service.SetMetrics {
	return service.SetMetrics{
		Weight:     r.Weight,
		Reps:       r.Reps,
		RPE:        r.RPE,
		Duration:   r.Duration,
		Distance:   r.Distance,
		Resistance: r.Resistance,
		HeartRate:  r.HeartRate,
	}
}

// TargetSetResponse is the DTO for one planned set.
type TargetSetResponse struct {
	ID         string   `json:"id"`
	Order      int      `json:"order"`
	Weight     *float64 `json:"weight,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	RPE        *float64 `json:"rpe,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
	Resistance *float64 `json:"resistance,omitempty"`
	HeartRate  *int     `json:"heartRate,omitempty"`
}

// SetRecordResponse is the DTO for one performed set, actuals plus the
// echoed plan.
type SetRecordResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Order     int       `json:"order"`
	IsTracked bool      `json:"isTracked"`

	Weight     *float64 `json:"weight,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	RPE        *float64 `json:"rpe,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
	Resistance *float64 `json:"resistance,omitempty"`
	HeartRate  *int     `json:"heartRate,omitempty"`

	TargetWeight     *float64 `json:"targetWeight,omitempty"`
	TargetReps       *int     `json:"targetReps,omitempty"`
	TargetRPE        *float64 `json:"targetRpe,omitempty"`
	TargetDuration   *float64 `json:"targetDuration,omitempty"`
	TargetDistance   *float64 `json:"targetDistance,omitempty"`
	TargetResistance *float64 `json:"targetResistance,omitempty"`
	TargetHeartRate  *int     `json:"targetHeartRate,omitempty"`
}

// LinkResponse is the DTO for one workout exercise entry. Exercise,
// TargetSets and Sets are filled on detail reads and omitted on bare
// mutations.
type LinkResponse struct {
	ID          string              `json:"id"`
	ExerciseID  string              `json:"exerciseId"`
	Order       int                 `json:"order"`
	Notes       string              `json:"notes,omitempty"`
	TargetMode  string              `json:"targetMode"`
	TargetNote  string              `json:"targetNote,omitempty"`
	IsCompleted bool                `json:"isCompleted"`
	Exercise    *ExerciseResponse   `json:"exercise,omitempty"`
	TargetSets  []TargetSetResponse `json:"targetSets,omitempty"`
	Sets        []SetRecordResponse `json:"sets,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// MapTargetSetToResponse converts a domain.TargetSet to its response DTO.
func MapTargetSetToResponse(t *domain.TargetSet) TargetSetResponse {
	return TargetSetResponse{
		ID:         t.ID.Hex(),
		Order:      t.Order,
		Weight:     t.Weight,
		Reps:       t.Reps,
		RPE:        t.RPE,
		Duration:   t.Duration,
		Distance:   t.Distance,
		Resistance: t.Resistance,
		HeartRate:  t.HeartRate,
	}
}

// MapSetRecordToResponse converts a domain.SetRecord to its response DTO.
func MapSetRecordToResponse(s *domain.SetRecord) SetRecordResponse {
	return SetRecordResponse{
		ID:        s.ID.Hex(),
		Type:      string(s.Type),
		Date:      s.Date,
		Order:     s.Order,
		IsTracked: s.IsTracked,

		Weight:     s.Weight,
		Reps:       s.Reps,
		RPE:        s.RPE,
		Duration:   s.Duration,
		Distance:   s.Distance,
		Resistance: s.Resistance,
		HeartRate:  s.HeartRate,

		TargetWeight:     s.TargetWeight,
		TargetReps:       s.TargetReps,
		TargetRPE:        s.TargetRPE,
		TargetDuration:   s.TargetDuration,
		TargetDistance:   s.TargetDistance,
		TargetResistance: s.TargetResistance,
		TargetHeartRate:  s.TargetHeartRate,
	}
}

// MapLinkToResponse converts a bare link (no loaded children).
func MapLinkToResponse(l *domain.WorkoutExerciseLink) LinkResponse {
	if l == nil {
		return LinkResponse{}
	}
	return LinkResponse{
		ID:          l.ID.Hex(),
		ExerciseID:  l.ExerciseID.Hex(),
		Order:       l.Order,
		Notes:       l.Notes,
		TargetMode:  string(l.TargetMode),
		TargetNote:  l.TargetNote,
		IsCompleted: l.IsCompleted,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// MapLinkDetailToResponse converts a fully loaded entry.
func MapLinkDetailToResponse(d *service.LinkDetail) LinkResponse {
	if d == nil {
		return LinkResponse{}
	}
	resp := MapLinkToResponse(&d.Link)
	if d.Exercise != nil {
		ex := MapExerciseToResponse(d.Exercise)
		resp.Exercise = &ex
	}
	resp.TargetSets = make([]TargetSetResponse, len(d.TargetSets))
	for i := range d.TargetSets {
		resp.TargetSets[i] = MapTargetSetToResponse(&d.TargetSets[i])
	}
	resp.Sets = make([]SetRecordResponse, len(d.Sets))
	for i := range d.Sets {
		resp.Sets[i] = MapSetRecordToResponse(&d.Sets[i])
	}
	return resp
}

// MapLinkDetailsToResponse converts a slice of loaded entries.
func MapLinkDetailsToResponse(details []service.LinkDetail) []LinkResponse {
	responses := make([]LinkResponse, len(details))
	for i := range details {
		responses[i] = MapLinkDetailToResponse(&details[i])
	}
	return responses
}

// --- Owner-scoped handlers (exercises of a template or event) ---

func (h *LinkHandler) ownerFromRoute(c *gin.Context, kind domain.OwnerKind) (domain.LinkOwner, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return domain.LinkOwner{}, false
	}
	return domain.LinkOwner{Kind: kind, ID: id}, true
}

func (h *LinkHandler) attach(c *gin.Context, kind domain.OwnerKind) {
	owner, ok := h.ownerFromRoute(c, kind)
	if !ok {
		return
	}
	var req AttachExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exerciseId format")
		return
	}

	link, err := h.linkService.AttachExercise(c.Request.Context(), owner, exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapLinkToResponse(link))
}

func (h *LinkHandler) list(c *gin.Context, kind domain.OwnerKind) {
	owner, ok := h.ownerFromRoute(c, kind)
	if !ok {
		return
	}

	details, err := h.linkService.ListLinks(c.Request.Context(), owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapLinkDetailsToResponse(details))
}

func (h *LinkHandler) reorder(c *gin.Context, kind domain.OwnerKind) {
	owner, ok := h.ownerFromRoute(c, kind)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.linkService.ReorderLinks(c.Request.Context(), owner, req.From, *req.To); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LinkHandler) reorderInCategory(c *gin.Context, kind domain.OwnerKind) {
	owner, ok := h.ownerFromRoute(c, kind)
	if !ok {
		return
	}
	var req CategoryReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.linkService.ReorderLinksInCategory(c.Request.Context(), owner, domain.ExerciseCategory(req.Category), req.From, *req.To)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AttachToTemplate adds an exercise to a template's list.
func (h *LinkHandler) AttachToTemplate(c *gin.Context) { h.attach(c, domain.OwnerTemplate) }

// AttachToEvent adds an exercise to an event's list.
func (h *LinkHandler) AttachToEvent(c *gin.Context) { h.attach(c, domain.OwnerEvent) }

// ListTemplateLinks returns a template's exercise entries in order.
func (h *LinkHandler) ListTemplateLinks(c *gin.Context) { h.list(c, domain.OwnerTemplate) }

// ListEventLinks returns an event's exercise entries in order.
func (h *LinkHandler) ListEventLinks(c *gin.Context) { h.list(c, domain.OwnerEvent) }

// ReorderTemplateLinks moves entries within a template's list.
func (h *LinkHandler) ReorderTemplateLinks(c *gin.Context) { h.reorder(c, domain.OwnerTemplate) }

// ReorderEventLinks moves entries within an event's list.
func (h *LinkHandler) ReorderEventLinks(c *gin.Context) { h.reorder(c, domain.OwnerEvent) }

// ReorderTemplateLinksInCategory moves entries within one exercise category
// of a template's list.
func (h *LinkHandler) ReorderTemplateLinksInCategory(c *gin.Context) {
	h.reorderInCategory(c, domain.OwnerTemplate)
}

// ReorderEventLinksInCategory moves entries within one exercise category of
// an event's list.
func (h *LinkHandler) ReorderEventLinksInCategory(c *gin.Context) {
	h.reorderInCategory(c, domain.OwnerEvent)
}

// --- Entry-scoped handlers ---

// GetLink returns one entry with its exercise and both set lists.
func (h *LinkHandler) GetLink(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.linkService.GetLinkByID(c.Request.Context(), linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapLinkDetailToResponse(detail))
}

// UpdateLink edits an entry's notes and target settings.
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req LinkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	link, err := h.linkService.UpdateLink(c.Request.Context(), linkID, req.Notes, domain.TargetMode(req.TargetMode), req.TargetNote)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapLinkToResponse(link))
}

// ToggleLinkCompleted flips an entry's completed checkmark.
func (h *LinkHandler) ToggleLinkCompleted(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	link, err := h.linkService.ToggleLinkCompleted(c.Request.Context(), linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapLinkToResponse(link))
}

// DeleteLink removes an entry and cascades through its targets and sets.
func (h *LinkHandler) DeleteLink(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.linkService.DeleteLink(c.Request.Context(), linkID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SyncSetCounts equalizes the entry's target and actual set counts by
// appending to the shorter list, and returns the reconciled entry.
func (h *LinkHandler) SyncSetCounts(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.linkService.SyncSetCounts(c.Request.Context(), linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapLinkDetailToResponse(detail))
}

// AddSet appends one set record to the entry.
func (h *LinkHandler) AddSet(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.linkService.AddSet(c.Request.Context(), linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSetRecordToResponse(record))
}

// RemoveSetAt deletes the whole set row at one position (set record plus the
// target set at the same position) and closes both gaps.
func (h *LinkHandler) RemoveSetAt(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid position")
		return
	}

	if err := h.linkService.RemoveSetAt(c.Request.Context(), linkID, position); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddTargetSet appends one planned set to the entry.
func (h *LinkHandler) AddTargetSet(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	target, err := h.linkService.AddTargetSet(c.Request.Context(), linkID, req.toMetrics())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapTargetSetToResponse(target))
}

// ReorderTargetSets moves planned sets within the entry's target list.
func (h *LinkHandler) ReorderTargetSets(c *gin.Context) {
	linkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.linkService.ReorderTargetSets(c.Request.Context(), linkID, req.From, *req.To); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateTargetSet overwrites a planned set's metrics.
func (h *LinkHandler) UpdateTargetSet(c *gin.Context) {
	targetSetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	target, err := h.linkService.UpdateTargetSet(c.Request.Context(), targetSetID, req.toMetrics())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTargetSetToResponse(target))
}

// DeleteTargetSet removes one planned set and closes the gap.
func (h *LinkHandler) DeleteTargetSet(c *gin.Context) {
	targetSetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.linkService.DeleteTargetSet(c.Request.Context(), targetSetID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSetRecord logs the actuals of a performed set.
func (h *LinkHandler) UpdateSetRecord(c *gin.Context) {
	setRecordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetRecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	record, err := h.linkService.UpdateSetRecord(c.Request.Context(), setRecordID, req.toMetrics(), req.IsTracked)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSetRecordToResponse(record))
}

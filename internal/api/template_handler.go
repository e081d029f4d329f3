package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- DTOs ---

// TemplateRequest is the JSON body for creating or updating a template.
type TemplateRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// TemplateResponse is the DTO for returning template details.
type TemplateResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReorderRequest is the JSON body of every list reorder endpoint: move the
// elements at the from positions, as one block, to offset to. To is a
// pointer so position 0 still binds.
type ReorderRequest struct {
	From []int `json:"from" binding:"required,min=1"`
	To   *int  `json:"to" binding:"required"`
}

// CategoryReorderRequest reorders within one category of a larger list.
type CategoryReorderRequest struct {
	Category string `json:"category" binding:"required"`
	From     []int  `json:"from" binding:"required,min=1"`
	To       *int   `json:"to" binding:"required"`
}

// MapTemplateToResponse converts a domain.WorkoutTemplate to its response DTO.
func MapTemplateToResponse(t *domain.WorkoutTemplate) TemplateResponse {
	if t == nil {
		return TemplateResponse{}
	}
	return TemplateResponse{
		ID:        t.ID.Hex(),
		Title:     t.Title,
		Category:  string(t.Category),
		Order:     t.Order,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// MapTemplatesToResponse converts a slice of templates to response DTOs.
func MapTemplatesToResponse(templates []domain.WorkoutTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = MapTemplateToResponse(&templates[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateTemplate appends a new template to the saved workout list.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), req.Title, domain.WorkoutCategory(req.Category))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapTemplateToResponse(template))
}

// ListTemplates returns every template in list order.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTemplatesToResponse(templates))
}

// GetTemplate returns one template.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplateByID(c.Request.Context(), templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTemplateToResponse(template))
}

// UpdateTemplate edits title and category. Category edits are refused with
// 409 once exercises are attached.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, req.Title, domain.WorkoutCategory(req.Category))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTemplateToResponse(template))
}

// DeleteTemplate removes a template and cascades through its exercise
// entries and their sets.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderTemplates moves templates within the global list.
func (h *TemplateHandler) ReorderTemplates(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.templateService.ReorderTemplates(c.Request.Context(), req.From, *req.To); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderTemplatesInCategory moves templates within one category of the
// list, leaving other categories' slots untouched.
func (h *TemplateHandler) ReorderTemplatesInCategory(c *gin.Context) {
	var req CategoryReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.templateService.ReorderTemplatesInCategory(c.Request.Context(), domain.WorkoutCategory(req.Category), req.From, *req.To)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

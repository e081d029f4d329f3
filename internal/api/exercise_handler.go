package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the catalog service dependency.
type ExerciseHandler struct {
	catalogService service.CatalogService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(catalogService service.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService}
}

// --- DTOs ---

// ExerciseRequest is the JSON body for creating or updating an exercise.
type ExerciseRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category" binding:"required"`
	MuscleGroup  string `json:"muscleGroup" binding:"omitempty"`
	IsBodyweight bool   `json:"isBodyweight"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	MuscleGroup  string    `json:"muscleGroup,omitempty"`
	IsBodyweight bool      `json:"isBodyweight"`
	SetType      string    `json:"setType"`
	HasDemoVideo bool      `json:"hasDemoVideo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DemoUploadRequest asks for a presigned upload URL for a demo video.
type DemoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// MapExerciseToResponse converts a domain.Exercise to its response DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		ID:           ex.ID.Hex(),
		Name:         ex.Name,
		Category:     string(ex.Category),
		IsBodyweight: ex.IsBodyweight,
		SetType:      string(ex.SetType()),
		HasDemoVideo: ex.DemoVideoKey != "",
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
	if ex.MuscleGroup != nil {
		resp.MuscleGroup = string(*ex.MuscleGroup)
	}
	return resp
}

// MapExercisesToResponse converts a slice of exercises to response DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func (r *ExerciseRequest) muscleGroup() *domain.MuscleGroup {
	if r.MuscleGroup == "" {
		return nil
	}
	g := domain.MuscleGroup(r.MuscleGroup)
	return &g
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a catalog exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Name already taken"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.catalogService.CreateExercise(
		c.Request.Context(),
		req.Name,
		domain.ExerciseCategory(req.Category),
		req.muscleGroup(),
		req.IsBodyweight,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises returns the catalog, optionally filtered by ?category= or
// ?muscleGroup= (sorted by name either way).
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		exercises []domain.Exercise
		err       error
	)
	switch {
	case c.Query("category") != "":
		exercises, err = h.catalogService.ListExercisesByCategory(ctx, domain.ExerciseCategory(c.Query("category")))
	case c.Query("muscleGroup") != "":
		exercises, err = h.catalogService.ListExercisesByMuscleGroup(ctx, domain.MuscleGroup(c.Query("muscleGroup")))
	default:
		exercises, err = h.catalogService.ListExercises(ctx)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise returns one catalog entry.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.catalogService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise edits a catalog entry.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.catalogService.UpdateExercise(
		c.Request.Context(),
		exerciseID,
		req.Name,
		domain.ExerciseCategory(req.Category),
		req.muscleGroup(),
		req.IsBodyweight,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes a catalog entry. Refused with 409 while any workout
// entry still references the exercise.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteExercise(c.Request.Context(), exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestDemoUpload returns a presigned PUT URL for the exercise's demo
// video; the client uploads against it directly.
func (h *ExerciseHandler) RequestDemoUpload(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uploadURL, err := h.catalogService.RequestDemoUploadURL(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL})
}

// GetDemoVideo returns a presigned GET URL for the exercise's demo video.
func (h *ExerciseHandler) GetDemoVideo(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	videoURL, err := h.catalogService.GetDemoVideoURL(c.Request.Context(), exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videoUrl": videoURL})
}

// ClearDemoVideo removes the exercise's demo video.
func (h *ExerciseHandler) ClearDemoVideo(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.ClearDemoVideo(c.Request.Context(), exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the whole API surface under /api/v1.
func SetupRoutes(
	router *gin.Engine,
	catalogService service.CatalogService,
	templateService service.TemplateService,
	eventService service.EventService,
	linkService service.LinkService,
) {
	exerciseHandler := NewExerciseHandler(catalogService)
	templateHandler := NewTemplateHandler(templateService)
	eventHandler := NewEventHandler(eventService)
	linkHandler := NewLinkHandler(linkService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- Exercise Catalog ---
		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises) // ?category= / ?muscleGroup=
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)

			// Demo video media
			exerciseGroup.POST("/:id/demo-upload-url", exerciseHandler.RequestDemoUpload)
			exerciseGroup.GET("/:id/demo-url", exerciseHandler.GetDemoVideo)
			exerciseGroup.DELETE("/:id/demo", exerciseHandler.ClearDemoVideo)
		}

		// --- Workout Templates ---
		templateGroup := apiV1.Group("/templates")
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.POST("/reorder", templateHandler.ReorderTemplates)
			templateGroup.POST("/reorder-category", templateHandler.ReorderTemplatesInCategory)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.PUT("/:id", templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)

			// Exercises within a template
			templateGroup.POST("/:id/exercises", linkHandler.AttachToTemplate)
			templateGroup.GET("/:id/exercises", linkHandler.ListTemplateLinks)
			templateGroup.POST("/:id/exercises/reorder", linkHandler.ReorderTemplateLinks)
			templateGroup.POST("/:id/exercises/reorder-category", linkHandler.ReorderTemplateLinksInCategory)
		}

		// --- Workout Events (calendar) ---
		eventGroup := apiV1.Group("/events")
		{
			eventGroup.POST("", eventHandler.CreateEvent)
			eventGroup.POST("/from-template", eventHandler.ScheduleFromTemplate)
			eventGroup.GET("", eventHandler.ListEvents) // ?day= / ?from=&to=
			eventGroup.POST("/reorder", eventHandler.ReorderEvents)
			eventGroup.GET("/:id", eventHandler.GetEvent)
			eventGroup.PUT("/:id", eventHandler.UpdateEvent)
			eventGroup.DELETE("/:id", eventHandler.DeleteEvent)

			// Exercises within an event
			eventGroup.POST("/:id/exercises", linkHandler.AttachToEvent)
			eventGroup.GET("/:id/exercises", linkHandler.ListEventLinks)
			eventGroup.POST("/:id/exercises/reorder", linkHandler.ReorderEventLinks)
			eventGroup.POST("/:id/exercises/reorder-category", linkHandler.ReorderEventLinksInCategory)
		}

		// --- Workout Exercise Entries ---
		linkGroup := apiV1.Group("/links")
		{
			linkGroup.GET("/:id", linkHandler.GetLink)
			linkGroup.PUT("/:id", linkHandler.UpdateLink)
			linkGroup.POST("/:id/toggle-completed", linkHandler.ToggleLinkCompleted)
			linkGroup.DELETE("/:id", linkHandler.DeleteLink)

			// Reconciliation and set rows
			linkGroup.POST("/:id/sync", linkHandler.SyncSetCounts)
			linkGroup.POST("/:id/sets", linkHandler.AddSet)
			linkGroup.DELETE("/:id/sets/:position", linkHandler.RemoveSetAt)

			// Planned targets
			linkGroup.POST("/:id/target-sets", linkHandler.AddTargetSet)
			linkGroup.POST("/:id/target-sets/reorder", linkHandler.ReorderTargetSets)
		}

		apiV1.PUT("/target-sets/:id", linkHandler.UpdateTargetSet)
		apiV1.DELETE("/target-sets/:id", linkHandler.DeleteTargetSet)
		apiV1.PUT("/set-records/:id", linkHandler.UpdateSetRecord)
	}
}

// File: /routes/routes.go
package routes

import (
	"context"
	"net/http"
	"time"
	"tricycle-api/controllers"
	"tricycle-api/database"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 3 * time.Second

func SetupRoutes(r *gin.Engine, tricycleController *controllers.TricycleController, db database.Pinger, reporter database.HealthReporter, metricsHandler http.Handler) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		err := db.Ping(ctx)
		reporter.SetDatabaseUp(err == nil)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "down",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "up",
		})
	})

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Tricycle routes, one per Lambda function
	r.POST("/tricycle", Gateway(tricycleController.SaveTricycle))
	r.GET("/tricycles", Gateway(tricycleController.GetTricycles))
	r.PUT("/tricycle", Gateway(tricycleController.UpdateTricycle))
	r.DELETE("/tricycle", Gateway(tricycleController.DeleteTricycle))
}

package controllers

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-users-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

// HealthController reports service health, including dependency checks
type HealthController struct {
	db *gorm.DB
}

// NewHealthController creates a new instance of HealthController
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check godoc
// @Summary Health check
// @Description Check if the service and its dependencies are up
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthController) Check(ctx *gin.Context) {
	deps := map[string]string{"database": "up"}
	status := "healthy"
	message := "Service is running"
	code := http.StatusOK

	if err := h.pingDatabase(ctx); err != nil {
		deps["database"] = "down"
		status = "unhealthy"
		message = "Database check failed"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, models.HealthResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   apiVersion,
		Services:  deps,
	})
}

func (h *HealthController) pingDatabase(ctx *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx.Request.Context())
}

package controllers

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"highlight-reel-pipeline/application/ports/inbound"
	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/infrastructure/gin_interface/dto"
)

type StatusController interface {
	GetPipelineStatus(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type statusController struct {
	logger   outbound.LoggerPort
	progress inbound.PipelineProgressPort
}

func NewStatusController(logger outbound.LoggerPort, progress inbound.PipelineProgressPort) StatusController {
	return &statusController{
		logger:   logger,
		progress: progress,
	}
}

func (h *statusController) GetPipelineStatus(c *gin.Context) {
	executionID := c.Param("executionId")
	if decoded, err := url.QueryUnescape(executionID); err == nil {
		executionID = decoded
	}

	status, err := h.progress.Snapshot(c.Request.Context(), executionID)
	if err != nil {
		if err := c.AbortWithError(500, err); err != nil {
			h.logger.Error(err, "failed to abort with error")
		}
		return
	}

	c.JSON(200, dto.NewPipelineStatusResponse(status))
}

func (h *statusController) RegisterRoutes(g *gin.Engine) {
	g.GET("/executions/:executionId/status", h.GetPipelineStatus)
}

package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"highlight-reel-pipeline/application/ports/inbound"
	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
	"highlight-reel-pipeline/infrastructure/gin_interface/dto"
)

type AssemblyController interface {
	AssembleReel(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type assemblyController struct {
	logger    outbound.LoggerPort
	assembler inbound.ReelAssemblerPort
}

func NewAssemblyController(logger outbound.LoggerPort, assembler inbound.ReelAssemblerPort) AssemblyController {
	return &assemblyController{
		logger:    logger,
		assembler: assembler,
	}
}

func (h *assemblyController) AssembleReel(c *gin.Context) {
	var request dto.AssemblyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		if err := c.AbortWithError(400, err); err != nil {
			h.logger.Error(err, "failed to abort with error")
		}
		return
	}

	result, err := h.assembler.Assemble(c.Request.Context(), request.ToJob())
	if err != nil {
		status := 500
		if errors.Is(err, domain.ErrNoSegments) {
			status = 400
		}
		if err := c.AbortWithError(status, err); err != nil {
			h.logger.Error(err, "failed to abort with error")
		}
		return
	}

	c.JSON(200, dto.AssemblyResponse{
		FinalVideoURI: result.FinalLocation,
		TotalDuration: result.TotalDurationSeconds,
		SegmentCount:  result.SegmentCount,
	})
}

func (h *assemblyController) RegisterRoutes(g *gin.Engine) {
	g.POST("/assemble", h.AssembleReel)
}

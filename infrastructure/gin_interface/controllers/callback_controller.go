package controllers

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"highlight-reel-pipeline/application/ports/inbound"
	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
	"highlight-reel-pipeline/infrastructure/gin_interface/dto"
)

type CallbackController interface {
	HandleStorageEvent(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type callbackController struct {
	logger outbound.LoggerPort
	router inbound.CallbackRouterPort
}

func NewCallbackController(logger outbound.LoggerPort, router inbound.CallbackRouterPort) CallbackController {
	return &callbackController{
		logger: logger,
		router: router,
	}
}

func (h *callbackController) HandleStorageEvent(c *gin.Context) {
	var request dto.StorageEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		if err := c.AbortWithError(400, err); err != nil {
			h.logger.Error(err, "failed to abort with error")
		}
		return
	}

	notification := domain.StorageNotification{
		Bucket:    request.Detail.Bucket.Name,
		ObjectKey: decodeObjectKey(request.Detail.Object.Key),
	}

	if err := h.router.Route(c.Request.Context(), notification); err != nil {
		if err := c.AbortWithError(500, err); err != nil {
			h.logger.Error(err, "failed to abort with error")
		}
		return
	}

	c.Status(204)
}

func (h *callbackController) RegisterRoutes(g *gin.Engine) {
	g.POST("/callbacks/storage", h.HandleStorageEvent)
}

// Object keys arrive URL-encoded with spaces as plus signs.
func decodeObjectKey(key string) string {
	decoded, err := url.QueryUnescape(strings.ReplaceAll(key, "+", " "))
	if err != nil {
		return key
	}
	return decoded
}

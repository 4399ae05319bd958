package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spinwheel/internal/hub"
	"spinwheel/internal/models"
	"spinwheel/internal/store"
)

// ConfigHandler serves the prize list. Updates replace the whole list; the
// write-time filter drops zero-weight entries so they can never win.
type ConfigHandler struct {
	Store  *store.Store
	Hub    *hub.Hub
	Logger *zap.Logger
}

func (h *ConfigHandler) Register(r *gin.Engine) {
	r.GET("/config", h.get)
	r.POST("/config", h.update)
}

func (h *ConfigHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ReadConfig())
}

type updateConfigRequest struct {
	Prizes []models.Prize `json:"prizes"`
}

func (h *ConfigHandler) update(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Prizes) == 0 {
		Error(c, http.StatusBadRequest, "Invalid prizes")
		return
	}
	normalized := models.NormalizePrizes(req.Prizes)
	if len(normalized) == 0 {
		Error(c, http.StatusBadRequest, "All weights are zero")
		return
	}
	cfg := models.WheelConfig{Prizes: normalized}
	if err := h.Store.WriteConfig(cfg); err != nil {
		if h.Logger != nil {
			h.Logger.Error("write config failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "Storage failure")
		return
	}
	h.Hub.Publish(models.Event{Type: models.EventConfig, Payload: cfg})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

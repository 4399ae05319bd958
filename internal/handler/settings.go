package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spinwheel/internal/hub"
	"spinwheel/internal/models"
	"spinwheel/internal/store"
)

// SettingsHandler serves spin timing settings. Invalid fields are clamped or
// defaulted, never rejected.
type SettingsHandler struct {
	Store  *store.Store
	Hub    *hub.Hub
	Logger *zap.Logger
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	r.GET("/settings", h.get)
	r.POST("/settings", h.update)
}

func (h *SettingsHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ReadSettings())
}

// Fields stay untyped so non-numeric input ("abc") falls back to the default
// instead of failing the bind.
type updateSettingsRequest struct {
	Rounds   any `json:"rounds"`
	Duration any `json:"duration"`
	ModalMs  any `json:"modalMs"`
}

func (h *SettingsHandler) update(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid body")
		return
	}
	set := models.SettingsFrom(req.Rounds, req.Duration, req.ModalMs)
	if err := h.Store.WriteSettings(set); err != nil {
		if h.Logger != nil {
			h.Logger.Error("write settings failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "Storage failure")
		return
	}
	h.Hub.Publish(models.Event{Type: models.EventSettings, Payload: set})
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": set})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spinwheel/internal/history"
	"spinwheel/internal/hub"
	"spinwheel/internal/models"
)

// HistoryHandler serves the draw log: bounded reads, direct appends for the
// non-authoritative local persistence path, and the admin clear.
type HistoryHandler struct {
	Log    *history.Log
	Hub    *hub.Hub
	Logger *zap.Logger
}

func (h *HistoryHandler) Register(r *gin.Engine) {
	r.GET("/history", h.list)
	r.POST("/history", h.append)
	r.POST("/history/clear", h.clear)
}

func (h *HistoryHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.Log.List(models.FetchHistoryLimit))
}

type appendHistoryRequest struct {
	Participant string `json:"participant"`
	Prize       string `json:"prize"`
	Time        int64  `json:"time"`
}

func (h *HistoryHandler) append(c *gin.Context) {
	var req appendHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Participant == "" || req.Prize == "" {
		Error(c, http.StatusBadRequest, "Missing fields")
		return
	}
	if req.Time == 0 {
		req.Time = time.Now().UnixMilli()
	}
	entry := models.HistoryEntry{Participant: req.Participant, Prize: req.Prize, Time: req.Time}
	if _, err := h.Log.Append(entry); err != nil {
		if h.Logger != nil {
			h.Logger.Error("append history failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "Storage failure")
		return
	}
	h.Hub.Publish(models.Event{Type: models.EventHistoryAppend, Payload: entry})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *HistoryHandler) clear(c *gin.Context) {
	if err := h.Log.Clear(); err != nil {
		if h.Logger != nil {
			h.Logger.Error("clear history failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "Storage failure")
		return
	}
	h.Hub.Publish(models.Event{Type: models.EventHistory, Payload: []models.HistoryEntry{}})
	c.JSON(http.StatusOK, gin.H{"ok": true, "cleared": true})
}

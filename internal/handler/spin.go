package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spinwheel/internal/models"
	"spinwheel/internal/service"
)

// SpinHandler triggers the authoritative draw flow.
type SpinHandler struct {
	Service *service.SpinService
	Logger  *zap.Logger
}

func (h *SpinHandler) Register(r *gin.Engine) {
	r.POST("/spin", h.spin)
}

// Both base64 aliases are accepted to survive upstream encoding quirks; count
// stays untyped so junk input degrades to a single draw.
type spinRequest struct {
	Participant       string `json:"participant"`
	ParticipantB64    string `json:"participant_b64"`
	ParticipantB64Alt string `json:"participantB64"`
	Count             any    `json:"count"`
}

func (h *SpinHandler) spin(c *gin.Context) {
	var req spinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid body")
		return
	}
	b64 := req.ParticipantB64
	if b64 == "" {
		b64 = req.ParticipantB64Alt
	}
	participant := service.DecodeParticipant(req.Participant, b64)
	count := models.IntFrom(req.Count, 1)

	result, err := h.Service.Spin(participant, count)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("spin failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "Storage failure")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"queued":  len(result.Results),
		"results": result.Results,
	})
}

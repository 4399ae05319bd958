package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"spinwheel/internal/store"
)

type HealthHandler struct {
	Store *store.Store
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready verifies the data dir is still writable, since every state mutation
// depends on it.
func (h *HealthHandler) ready(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store_missing"})
		return
	}
	probe := filepath.Join(h.Store.Dir(), ".readyz")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "data_dir_unwritable"})
		return
	}
	_ = os.Remove(probe)
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdminClearAll wipes the whole store. The GUI exposes it behind a
// confirmation dialog for a clean start.
func (h *Handler) AdminClearAll(c *gin.Context) {
	if err := h.AdminSvc.ClearAll(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

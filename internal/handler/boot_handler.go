package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BootReconciler interface {
	Reconcile(ctx context.Context) bool
}

type BootHandler struct {
	reconciler BootReconciler
}

func NewBootHandler(reconciler BootReconciler) *BootHandler {
	return &BootHandler{
		reconciler: reconciler,
	}
}

func (h *BootHandler) Register(r gin.IRoutes) {
	r.POST("/boot", h.HandleBoot)
}

// HandleBoot re-establishes every enabled alarm's native schedule, as after a device restart.
func (h *BootHandler) HandleBoot(c *gin.Context) {
	if !h.reconciler.Reconcile(c.Request.Context()) {
		c.JSON(http.StatusInternalServerError, gin.H{"reconciled": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reconciled": true})
}

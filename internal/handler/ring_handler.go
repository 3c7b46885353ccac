package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/deeplink"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/followup"
)

type RingCoordinator interface {
	Handle(ctx context.Context, ev followup.Event) (followup.Outcome, error)
	SnoozeAllowed(ctx context.Context, alarmID string) (bool, error)
}

type ringResponse struct {
	followup.Outcome
	AppLink string `json:"app_link"`
}

type RingHandler struct {
	coordinator RingCoordinator
}

func NewRingHandler(coordinator RingCoordinator) *RingHandler {
	return &RingHandler{
		coordinator: coordinator,
	}
}

func (h *RingHandler) Register(r gin.IRoutes) {
	r.POST("/alarms/:id/ring", h.HandleRing)
	r.GET("/alarms/:id/ring", h.HandleRing)
}

// HandleRing serves both the scheduler callback and the dismiss and snooze controls. The
// query carries the deep-link flags.
func (h *RingHandler) HandleRing(c *gin.Context) {
	ctx := c.Request.Context()

	route, err := deeplink.FromQuery(c.Param("id"), c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, "ring.parse.fail", err)
		return
	}

	slog.InfoContext(ctx, "handling ring request",
		slog.String("alarm_id", route.AlarmID),
		slog.String("kind", string(route.Kind())),
		slog.String("method", c.Request.Method),
	)

	if route.Kind() == deeplink.KindSnooze {
		allowed, err := h.coordinator.SnoozeAllowed(ctx, route.AlarmID)
		if err != nil {
			respondServiceError(c, "ring.snooze.check.fail", err)
			return
		}
		if !allowed {
			slog.InfoContext(ctx, "snooze refused",
				slog.String("event", "ring.snooze.refused"),
				slog.String("alarm_id", route.AlarmID),
			)
			respondError(c, http.StatusConflict, "snooze_refused", "no snoozes left for this ring")
			return
		}
	}

	out, err := h.coordinator.Handle(ctx, followup.EventFromRoute(route))
	if err != nil {
		respondServiceError(c, "ring.handle.fail", err)
		return
	}

	c.JSON(http.StatusOK, ringResponse{
		Outcome: out,
		AppLink: deeplink.AppLink(route),
	})
}

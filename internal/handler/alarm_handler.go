package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/lifecycle"
)

type AlarmService interface {
	Create(ctx context.Context, patch lifecycle.AlarmPatch) (domain.Alarm, error)
	Get(ctx context.Context, id string) (domain.Alarm, error)
	List(ctx context.Context) []domain.Alarm
	Update(ctx context.Context, id string, patch lifecycle.AlarmPatch) (domain.Alarm, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string, enabled bool) (domain.Alarm, error)
	SaveAlarms(ctx context.Context) (int, error)
	NextTrigger(a domain.Alarm, now time.Time) time.Time
}

type alarmRequest struct {
	Name       *string            `json:"name" binding:"omitempty,max=200"`
	RingHours  *int               `json:"ring_hours" binding:"omitempty,min=0,max=23"`
	RingMins   *int               `json:"ring_mins" binding:"omitempty,min=0,max=59"`
	Repeat     *bool              `json:"repeat"`
	RepeatDays *domain.RepeatDays `json:"repeat_days"`
	Vibrate    *bool              `json:"vibrate"`
	Ringtone   *domain.Ringtone   `json:"ringtone"`
	Puzzles    *[]domain.Puzzle   `json:"puzzles"`
	BoosterSet *domain.BoosterSet `json:"booster_set"`
	Enabled    *bool              `json:"enabled"`
}

func (r alarmRequest) patch() lifecycle.AlarmPatch {
	return lifecycle.AlarmPatch{
		Name:       r.Name,
		RingHours:  r.RingHours,
		RingMins:   r.RingMins,
		Repeat:     r.Repeat,
		RepeatDays: r.RepeatDays,
		Vibrate:    r.Vibrate,
		Ringtone:   r.Ringtone,
		Puzzles:    r.Puzzles,
		BoosterSet: r.BoosterSet,
		Enabled:    r.Enabled,
	}
}

type toggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type alarmResponse struct {
	domain.Alarm
	NextTrigger *time.Time `json:"next_trigger,omitempty"`
}

type listResponse struct {
	Alarms []alarmResponse `json:"alarms"`
}

type syncResponse struct {
	Written int `json:"written"`
}

type AlarmHandler struct {
	alarms AlarmService
	now    func() time.Time
}

func NewAlarmHandler(alarms AlarmService) *AlarmHandler {
	return &AlarmHandler{
		alarms: alarms,
		now:    time.Now,
	}
}

func (h *AlarmHandler) Register(r gin.IRoutes) {
	r.POST("/alarms", h.HandleCreate)
	r.GET("/alarms", h.HandleList)
	r.POST("/alarms/sync", h.HandleSync)
	r.GET("/alarms/:id", h.HandleGet)
	r.PATCH("/alarms/:id", h.HandleUpdate)
	r.DELETE("/alarms/:id", h.HandleDelete)
	r.POST("/alarms/:id/toggle", h.HandleToggle)
}

func (h *AlarmHandler) HandleCreate(c *gin.Context) {
	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	a, err := h.alarms.Create(c.Request.Context(), req.patch())
	if err != nil {
		h.respondMutationError(c, "alarm.create.fail", a, err)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(a))
}

func (h *AlarmHandler) HandleList(c *gin.Context) {
	alarms := h.alarms.List(c.Request.Context())

	resp := listResponse{Alarms: make([]alarmResponse, 0, len(alarms))}
	for _, a := range alarms {
		resp.Alarms = append(resp.Alarms, h.toResponse(a))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AlarmHandler) HandleGet(c *gin.Context) {
	a, err := h.alarms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "alarm.get.fail", err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(a))
}

func (h *AlarmHandler) HandleUpdate(c *gin.Context) {
	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	a, err := h.alarms.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		h.respondMutationError(c, "alarm.update.fail", a, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(a))
}

func (h *AlarmHandler) HandleDelete(c *gin.Context) {
	if err := h.alarms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "alarm.delete.fail", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AlarmHandler) HandleToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	a, err := h.alarms.Toggle(c.Request.Context(), c.Param("id"), *req.Enabled)
	if err != nil {
		respondServiceError(c, "alarm.toggle.fail", err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(a))
}

func (h *AlarmHandler) HandleSync(c *gin.Context) {
	n, err := h.alarms.SaveAlarms(c.Request.Context())
	if err != nil {
		respondServiceError(c, "alarm.sync.fail", err)
		return
	}

	c.JSON(http.StatusOK, syncResponse{Written: n})
}

// respondMutationError reports a native failure together with the alarm, which was kept.
func (h *AlarmHandler) respondMutationError(c *gin.Context, event string, a domain.Alarm, err error) {
	if errors.Is(err, domain.ErrNativeCall) && a.ID != "" {
		status, errType := statusFor(err)
		c.JSON(status, gin.H{
			"error":   errType,
			"message": err.Error(),
			"alarm":   h.toResponse(a),
		})
		return
	}

	respondServiceError(c, event, err)
}

func (h *AlarmHandler) toResponse(a domain.Alarm) alarmResponse {
	resp := alarmResponse{Alarm: a}
	if a.Enabled {
		next := h.alarms.NextTrigger(a, h.now())
		resp.NextTrigger = &next
	}
	return resp
}

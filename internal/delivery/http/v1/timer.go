package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/focusflow/internal/models"
)

type getTimerResponse struct {
	IsRunning  bool            `json:"isRunning"`
	ElapsedMs  float64         `json:"elapsedMs"`
	ActiveTask *models.TaskRef `json:"activeTask"`
	Formatted  string          `json:"formatted"`
}

func (h *handlerImpl) newGetTimerResponse(state models.TimerState) getTimerResponse {
	return getTimerResponse{
		IsRunning:  state.IsRunning,
		ElapsedMs:  models.DurationToMillis(state.Elapsed),
		ActiveTask: state.ActiveTask,
		Formatted:  h.timer.Format(state.Elapsed),
	}
}

func (h *handlerImpl) HandleGetTimer(c *gin.Context) {
	c.JSON(http.StatusOK, h.newGetTimerResponse(h.timer.State()))
}

func (h *handlerImpl) HandlePauseTimer(c *gin.Context) {
	h.timer.Pause(c)
	c.JSON(http.StatusOK, h.newGetTimerResponse(h.timer.State()))
}

func (h *handlerImpl) HandleResumeTimer(c *gin.Context) {
	err := h.timer.Resume(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to resume timer")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, h.newGetTimerResponse(h.timer.State()))
}

func (h *handlerImpl) HandleStopTimer(c *gin.Context) {
	h.timer.Stop(c)
	c.JSON(http.StatusOK, h.newGetTimerResponse(h.timer.State()))
}

func (h *handlerImpl) HandleResetTimer(c *gin.Context) {
	h.timer.Reset(c)
	c.JSON(http.StatusOK, h.newGetTimerResponse(h.timer.State()))
}

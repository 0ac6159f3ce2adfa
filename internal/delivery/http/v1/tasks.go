package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/focusflow/internal/models"
	"github.com/adanyl0v/focusflow/internal/services"
)

type createTaskRequest struct {
	Title string `json:"title" binding:"max=255"`
	Tag   string `json:"tag" binding:"max=64"`
	// Date is YYYY-MM-DD; empty means today.
	Date string `json:"date"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.AddTask(c, services.AddTaskParams{
		Title: req.Title,
		Tag:   req.Tag,
		Date:  req.Date,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to add task")
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusCreated, task)
}

type getTasksQuery struct {
	Query  string `form:"query"`
	Status string `form:"status"`
	Tag    string `form:"tag"`
	Date   string `form:"date"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	var query getTasksQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	list, err := h.tasks.ListTasks(services.ListTasksParams{
		Query:  query.Query,
		Status: query.Status,
		Tag:    query.Tag,
		Date:   query.Date,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("status", query.Status).
			Str("date", query.Date).
			Msg("failed to list tasks")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlerImpl) HandleGetTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.Tags())
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.Task(c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to get task")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Title *string `json:"title,omitempty" binding:"omitempty,max=255"`
	// An empty tag clears it.
	Tag  *string `json:"tag,omitempty" binding:"omitempty,max=64"`
	Date *string `json:"date,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:    c.Param("id"),
		Title: req.Title,
		Tag:   req.Tag,
		Date:  req.Date,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to update task")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to delete task")
		abort(c, newServiceError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleStartTask(c *gin.Context) {
	task, err := h.tasks.StartTracking(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to start task")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	task, err := h.tasks.Complete(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to complete task")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleGetActiveTask(c *gin.Context) {
	task, err := h.tasks.ActiveTask()
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("no active task")
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleGetDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date != "" && !isValidDate(date) {
		h.logger.Error().
			Str("date", date).
			Msg("invalid report date")
		abort(c, newServiceError(services.ErrInvalidTaskDate))
		return
	}
	c.JSON(http.StatusOK, h.tasks.Report(date))
}

func isValidDate(date string) bool {
	_, err := time.Parse(models.DateLayout, date)
	return err == nil
}

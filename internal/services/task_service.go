package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/focusflow/internal/models"
	"github.com/adanyl0v/focusflow/internal/storage"
)

var timeNow = time.Now

type taskServiceImpl struct {
	logger         zerolog.Logger
	kv             storage.KV
	timer          TimerService
	location       *time.Location
	persistTimeout time.Duration

	mu    sync.RWMutex
	tasks []models.Task
}

// NewTaskService seeds the collection from kv. Unreadable or corrupt
// data yields an empty collection.
func NewTaskService(
	ctx context.Context,
	logger zerolog.Logger,
	kv storage.KV,
	timer TimerService,
	location *time.Location,
	persistTimeout time.Duration,
) TaskService {
	if location == nil {
		location = time.Local
	}
	s := &taskServiceImpl{
		logger:         logger,
		kv:             kv,
		timer:          timer,
		location:       location,
		persistTimeout: persistTimeout,
	}
	s.tasks = s.load(ctx)
	return s
}

func (s *taskServiceImpl) load(ctx context.Context) []models.Task {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.kv.Get(ctx, TasksStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn().
				Err(err).
				Str("key", TasksStorageKey).
				Msg("failed to read tasks")
		}
		return []models.Task{}
	}

	var tasks []models.Task
	err = json.Unmarshal([]byte(raw), &tasks)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", TasksStorageKey).
			Msg("failed to parse tasks")
		return []models.Task{}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	for i := range tasks {
		if tasks[i].Status == models.StatusCompleted && !tasks[i].WasStarted {
			s.logger.Warn().
				Str("task_id", tasks[i].ID).
				Msg("restored completed task that was never started")
			tasks[i].Status = models.StatusTodo
		}
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return tasks
}

func (s *taskServiceImpl) AddTask(ctx context.Context, params AddTaskParams) (*models.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	now := timeNow()
	date := params.Date
	if date == "" {
		date = now.In(s.location).Format(models.DateLayout)
	} else if !isValidDate(date) {
		return nil, ErrInvalidTaskDate
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	task := models.Task{
		ID:        taskUUID.String(),
		Title:     title,
		Tag:       tagPtr(params.Tag),
		Date:      date,
		Status:    models.StatusTodo,
		CreatedAt: now.UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append([]models.Task{task}, s.tasks...)
	s.persistLocked(ctx)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("date", task.Date).
		Msg("created task")
	created := task.Clone()
	return &created, nil
}

func (s *taskServiceImpl) StartTracking(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(taskID)
	if i < 0 {
		s.logger.Error().
			Str("task_id", taskID).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	task := &s.tasks[i]
	if !task.WasStarted {
		task.WasStarted = true
		s.persistLocked(ctx)
	}
	s.timer.Start(ctx, task.Ref())

	s.logger.Info().
		Str("task_id", taskID).
		Msg("started tracking task")
	started := task.Clone()
	return &started, nil
}

func (s *taskServiceImpl) Complete(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(taskID)
	if i < 0 {
		s.logger.Error().
			Str("task_id", taskID).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	task := &s.tasks[i]
	if !task.WasStarted {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("refused to complete task that was never started")
		return nil, ErrTaskNotStarted
	}

	if task.Status != models.StatusCompleted {
		task.Status = models.StatusCompleted
		s.persistLocked(ctx)
	}

	timerState := s.timer.State()
	if timerState.ActiveTask != nil && timerState.ActiveTask.ID == taskID {
		s.timer.Stop(ctx)
		s.logger.Debug().
			Str("task_id", taskID).
			Msg("stopped timer for completed task")
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("completed task")
	completed := task.Clone()
	return &completed, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(taskID)
	if i < 0 {
		s.logger.Error().
			Str("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.persistLocked(ctx)

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	var title string
	if params.Title != nil {
		title = strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, ErrEmptyTaskTitle
		}
	}
	if params.Date != nil && !isValidDate(*params.Date) {
		return nil, ErrInvalidTaskDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(params.ID)
	if i < 0 {
		s.logger.Error().
			Str("task_id", params.ID).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	task := &s.tasks[i]
	if params.Title == nil && params.Tag == nil && params.Date == nil {
		s.logger.Warn().
			Str("task_id", params.ID).
			Msg("no fields to update")
		unchanged := task.Clone()
		return &unchanged, nil
	}

	if params.Title != nil {
		task.Title = title
	}
	if params.Tag != nil {
		task.Tag = tagPtr(*params.Tag)
	}
	if params.Date != nil {
		task.Date = *params.Date
	}
	s.persistLocked(ctx)

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	updated := task.Clone()
	return &updated, nil
}

func (s *taskServiceImpl) Task(taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(taskID)
	if i < 0 {
		return nil, ErrTaskNotFound
	}
	task := s.tasks[i].Clone()
	return &task, nil
}

func (s *taskServiceImpl) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.tasks))
	for i := range s.tasks {
		tasks = append(tasks, s.tasks[i].Clone())
	}
	return tasks
}

func (s *taskServiceImpl) FilterByDate(date string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for i := range s.tasks {
		if s.tasks[i].Date == date {
			tasks = append(tasks, s.tasks[i].Clone())
		}
	}
	return tasks
}

func (s *taskServiceImpl) ListTasks(params ListTasksParams) (*models.TaskList, error) {
	query := strings.ToLower(strings.TrimSpace(params.Query))
	tag := strings.TrimSpace(params.Tag)

	status := params.Status
	switch status {
	case "":
		status = models.FilterAll
	case models.FilterAll, models.FilterActive, models.FilterCompleted:
	default:
		return nil, ErrInvalidStatusFilter
	}
	if params.Date != "" && !isValidDate(params.Date) {
		return nil, ErrInvalidTaskDate
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := &models.TaskList{
		Tasks: make([]models.Task, 0),
		Tags:  s.tagsLocked(),
	}
	for i := range s.tasks {
		task := &s.tasks[i]
		completed := task.Status == models.StatusCompleted

		list.Counts.All++
		if completed {
			list.Counts.Completed++
		} else {
			list.Counts.Active++
		}

		switch {
		case status == models.FilterActive && completed,
			status == models.FilterCompleted && !completed:
			continue
		case params.Date != "" && task.Date != params.Date:
			continue
		case tag != "" && (task.Tag == nil || !strings.EqualFold(*task.Tag, tag)):
			continue
		case query != "" && !strings.Contains(strings.ToLower(task.Title), query):
			continue
		}
		list.Tasks = append(list.Tasks, task.Clone())
	}

	s.logger.Debug().
		Str("status", status).
		Int("matched", len(list.Tasks)).
		Int("total", list.Counts.All).
		Msg("listed tasks")
	return list, nil
}

func (s *taskServiceImpl) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagsLocked()
}

func (s *taskServiceImpl) tagsLocked() []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for i := range s.tasks {
		if s.tasks[i].Tag == nil {
			continue
		}
		tag := *s.tasks[i].Tag
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (s *taskServiceImpl) ActiveTask() (*models.Task, error) {
	ref := s.timer.State().ActiveTask
	if ref == nil {
		return nil, ErrNoActiveTask
	}
	return s.Task(ref.ID)
}

func (s *taskServiceImpl) Report(date string) models.DailyReport {
	if date == "" {
		date = timeNow().In(s.location).Format(models.DateLayout)
	}
	report := models.DailyReport{
		Date:  date,
		ByTag: make(map[string]int),
	}
	for _, task := range s.FilterByDate(date) {
		report.Total++
		switch task.Progress() {
		case models.ProgressCompleted:
			report.Completed++
		case models.ProgressInProgress:
			report.InProgress++
		default:
			report.Todo++
		}

		tag := ""
		if task.Tag != nil {
			tag = *task.Tag
		}
		report.ByTag[tag]++
	}
	return report
}

func (s *taskServiceImpl) indexLocked(taskID string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func (s *taskServiceImpl) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to marshal tasks")
		return
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = s.kv.Set(ctx, TasksStorageKey, string(data))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", TasksStorageKey).
			Msg("failed to persist tasks")
	}
}

func (s *taskServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.persistTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.persistTimeout)
}

func isValidDate(date string) bool {
	_, err := time.Parse(models.DateLayout, date)
	return err == nil
}

func tagPtr(tag string) *string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	return &tag
}

package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fakeyudi/lapwing/internal/task"
)

// handleTimerPoll is the once-per-second read the page loops on. The
// snapshot is the response body, so a session expiry shows up as
// session_changed / session_complete fields on this route and nowhere else.
func (s *Server) handleTimerPoll(c *gin.Context) {
	c.JSON(http.StatusOK, s.timer.Poll(s.now()))
}

// timerOp runs a lifecycle operation. Calling one in the wrong state is not
// an error to the client; the response carries a warning and the current
// snapshot either way.
func (s *Server) timerOp(c *gin.Context, op func(time.Time) error) {
	now := s.now()
	resp := gin.H{"success": true}
	if err := op(now); err != nil {
		resp["warning"] = err.Error()
	}
	resp["timer"] = s.timer.Snapshot(now)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTimerStart(c *gin.Context) {
	s.timerOp(c, s.timer.Start)
}

func (s *Server) handleTimerPause(c *gin.Context) {
	s.timerOp(c, s.timer.Pause)
}

func (s *Server) handleTimerResume(c *gin.Context) {
	s.timerOp(c, s.timer.Resume)
}

func (s *Server) handleTimerReset(c *gin.Context) {
	s.timer.Reset()
	c.JSON(http.StatusOK, gin.H{"success": true, "timer": s.timer.Snapshot(s.now())})
}

type settingsRequest struct {
	WorkMinutes int `json:"work_minutes"`
	RestMinutes int `json:"rest_minutes"`
}

func (s *Server) handleTimerSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.timer.UpdateSettings(req.WorkMinutes, req.RestMinutes); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "timer": s.timer.Snapshot(s.now())})
}

func (s *Server) handleTimerFocus(c *gin.Context) {
	on := s.timer.ToggleFocusMode()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"is_focus_mode": on,
		"timer":         s.timer.Snapshot(s.now()),
	})
}

type switchTypeRequest struct {
	Work bool `json:"work"`
}

func (s *Server) handleTimerType(c *gin.Context) {
	var req switchTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	now := s.now()
	s.timer.SwitchType(req.Work, now)
	c.JSON(http.StatusOK, gin.H{"success": true, "timer": s.timer.Snapshot(now)})
}

func (s *Server) handleListTasks(c *gin.Context) {
	now := s.now()
	b := s.Board()

	var current *task.Task
	if cur, ok := b.CurrentTask(); ok {
		current = &cur
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"tasks":        b.Tasks(),
		"stats":        b.Stats(now),
		"all_done":     b.AllDone(),
		"current_task": current,
	})
}

type addTaskRequest struct {
	Text     string `json:"text"`
	Priority int    `json:"priority"`
	Deadline string `json:"deadline"` // "3:15 PM", optional
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	now := s.now()

	var due *time.Time
	if req.Deadline != "" {
		d, err := task.ParseClock(req.Deadline, now)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		due = &d
	}

	b := s.Board()
	t, err := b.Add(req.Text, req.Priority, due, now)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if !s.persist(c, b) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": t})
}

type updateTaskRequest struct {
	Text          *string `json:"text"`
	Priority      *int    `json:"priority"`
	Deadline      *string `json:"deadline"`
	ClearDeadline bool    `json:"clear_deadline"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	now := s.now()

	upd := task.TaskUpdate{
		Text:          req.Text,
		Priority:      req.Priority,
		ClearDeadline: req.ClearDeadline,
	}
	if req.Deadline != nil {
		d, err := task.ParseClock(*req.Deadline, now)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		upd.Deadline = &d
	}

	b := s.Board()
	t, err := b.Update(c.Param("id"), upd)
	if errors.Is(err, task.ErrTaskNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if !s.persist(c, b) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": t})
}

// handleCompleteTask toggles completion. Completing a task reports the lap
// and feeds the best-time log; a log write failure downgrades to a warning
// so the completion itself is never lost.
func (s *Server) handleCompleteTask(c *gin.Context) {
	now := s.now()
	b := s.Board()

	t, completed, err := b.Complete(c.Param("id"), now)
	if errors.Is(err, task.ErrTaskNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if !s.persist(c, b) {
		return
	}

	resp := gin.H{"success": true, "task": t, "completed": completed}
	if completed && t.LapSeconds != nil {
		resp["lap_seconds"] = *t.LapSeconds
		resp["lap_time"] = task.FormatLapTime(*t.LapSeconds)
		newRecord, err := s.best.Record(t.Text, *t.LapSeconds)
		if err != nil {
			resp["warning"] = err.Error()
		} else {
			resp["new_record"] = newRecord
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	b := s.Board()
	if err := b.Delete(c.Param("id")); err != nil {
		notFound(c)
		return
	}
	if !s.persist(c, b) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type sortRequest struct {
	By        string `json:"by"` // "priority" | "deadline"
	Ascending bool   `json:"ascending"`
}

func (s *Server) handleSortTasks(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	b := s.Board()
	switch req.By {
	case "priority":
		b.SortByPriority(req.Ascending)
	case "deadline":
		b.SortByDeadline()
	default:
		badRequest(c, fmt.Sprintf("unknown sort %q, expected \"priority\" or \"deadline\"", req.By))
		return
	}
	if !s.persist(c, b) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": b.Tasks()})
}

type deadlineRequest struct {
	Deadline string `json:"deadline"` // "3:15 PM"
}

func (s *Server) handleSetDeadline(c *gin.Context) {
	var req deadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	now := s.now()

	target, err := task.ParseClock(req.Deadline, now)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	b := s.Board()
	b.SetDeadline(target, now)
	if !s.persist(c, b) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"deadline":       target,
		"deadline_clock": task.FormatClock(target),
	})
}

func (s *Server) handleClearDeadline(c *gin.Context) {
	b := s.Board()
	b.ClearDeadline()
	if !s.persist(c, b) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRemaining(c *gin.Context) {
	now := s.now()
	b := s.Board()
	remaining := b.RemainingSeconds(now)
	c.JSON(http.StatusOK, gin.H{
		"remaining_seconds": remaining,
		"has_deadline":      b.Deadline() != nil,
		"low_time":          b.Deadline() != nil && remaining < s.cfg.LowTimeSeconds,
	})
}

func (s *Server) handleSpent(c *gin.Context) {
	spent := s.Board().SpentSeconds(s.now())
	c.JSON(http.StatusOK, gin.H{
		"spent_seconds": spent,
		"spent_time":    task.FormatLapTime(spent),
	})
}

func (s *Server) handleIncrements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"increments": task.TimeIncrements(s.now(), s.cfg.DeadlineSlots),
	})
}

func (s *Server) handleBestLog(c *gin.Context) {
	entries, err := s.best.Entries()
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "entries": entries})
}

func (s *Server) handleDeleteBest(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badRequest(c, "missing name parameter")
		return
	}
	removed, err := s.best.Delete(name)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

func (s *Server) handleListFavorites(c *gin.Context) {
	favs, err := s.favs.List()
	if err != nil {
		internalError(c, err)
		return
	}
	if favs == nil {
		favs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "favorites": favs})
}

type favoriteRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.favs.Add(req.Text); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRemoveFavorite(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		badRequest(c, "missing text parameter")
		return
	}
	removed, err := s.favs.Remove(text)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

func (s *Server) persist(c *gin.Context, b *task.Board) bool {
	if err := s.store.Save(b); err != nil {
		internalError(c, err)
		return false
	}
	return true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "task not found"})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

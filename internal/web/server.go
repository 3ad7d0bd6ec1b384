// Package web serves the task board UI and its JSON API. Handlers never read
// the wall clock directly; the server owns a clock function so tests can pin
// time.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fakeyudi/lapwing/internal/config"
	"github.com/fakeyudi/lapwing/internal/pomodoro"
	"github.com/fakeyudi/lapwing/internal/task"
)

// Deps are the collaborators the server exposes over HTTP.
type Deps struct {
	Config config.Config
	Board  *task.Board
	Store  task.BoardStore
	Best   *task.BestLog
	Favs   *task.Favorites
	Timer  *pomodoro.Session
	Now    func() time.Time // defaults to time.Now
}

// Server owns the router and the board state behind it.
type Server struct {
	cfg    config.Config
	store  task.BoardStore
	best   *task.BestLog
	favs   *task.Favorites
	timer  *pomodoro.Session
	router *gin.Engine
	now    func() time.Time

	mu    sync.RWMutex
	board *task.Board
}

// NewServer builds the API routes. HTML and static assets are mounted
// separately via MountUI so tests can drive the API headless.
func NewServer(d Deps) *Server {
	if d.Now == nil {
		d.Now = time.Now
	}
	s := &Server{
		cfg:   d.Config,
		store: d.Store,
		best:  d.Best,
		favs:  d.Favs,
		timer: d.Timer,
		now:   d.Now,
		board: d.Board,
	}

	router := gin.Default()
	api := router.Group("/api")
	{
		api.GET("/pomodoro", s.handleTimerPoll)
		api.POST("/pomodoro/start", s.handleTimerStart)
		api.POST("/pomodoro/pause", s.handleTimerPause)
		api.POST("/pomodoro/resume", s.handleTimerResume)
		api.POST("/pomodoro/reset", s.handleTimerReset)
		api.PUT("/pomodoro/settings", s.handleTimerSettings)
		api.POST("/pomodoro/focus", s.handleTimerFocus)
		api.POST("/pomodoro/type", s.handleTimerType)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleAddTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.POST("/tasks/:id/complete", s.handleCompleteTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/sort", s.handleSortTasks)

		api.POST("/deadline", s.handleSetDeadline)
		api.DELETE("/deadline", s.handleClearDeadline)
		api.GET("/remaining", s.handleRemaining)
		api.GET("/spent", s.handleSpent)
		api.GET("/increments", s.handleIncrements)

		api.GET("/bestlog", s.handleBestLog)
		api.DELETE("/bestlog", s.handleDeleteBest)

		api.GET("/favorites", s.handleListFavorites)
		api.POST("/favorites", s.handleAddFavorite)
		api.DELETE("/favorites", s.handleRemoveFavorite)
	}
	s.router = router
	return s
}

// MountUI attaches the HTML board and its static assets.
func (s *Server) MountUI(templatesGlob, staticDir string) {
	s.router.LoadHTMLGlob(templatesGlob)
	s.router.Static("/static", staticDir)
	s.router.GET("/", s.handleIndex)
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Board returns the live board.
func (s *Server) Board() *task.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// SetBoard swaps the live board, used when the data files change on disk.
func (s *Server) SetBoard(b *task.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
}

func (s *Server) handleIndex(c *gin.Context) {
	now := s.now()
	b := s.Board()

	var deadlineClock string
	if d := b.Deadline(); d != nil {
		deadlineClock = task.FormatClock(*d)
	}
	var current *task.Task
	if cur, ok := b.CurrentTask(); ok {
		current = &cur
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Tasks":            b.Tasks(),
		"Stats":            b.Stats(now),
		"AllDone":          b.AllDone(),
		"CurrentTask":      current,
		"Increments":       task.TimeIncrements(now, s.cfg.DeadlineSlots),
		"DeadlineClock":    deadlineClock,
		"RemainingSeconds": b.RemainingSeconds(now),
		"SpentSeconds":     b.SpentSeconds(now),
		"Timer":            s.timer.Snapshot(now),
		"LowTimeSeconds":   s.cfg.LowTimeSeconds,
	})
}

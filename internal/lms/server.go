package lms

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/node"
	"github.com/danmuck/rtectl/internal/observability"
	"github.com/danmuck/rtectl/internal/wire"
)

const (
	FramesetPath = "/lms/frameset"
	PostPath     = "/lms/post"

	pageContentType = "application/x-www-form-urlencoded; charset=utf-8"
)

type Config struct {
	Name        string
	Addr        string
	CorsOrigins []string
	// ContentDir is served under /content when set; otherwise placeholder pages are.
	ContentDir string
	Course     Course
}

type Server struct {
	ID       string    `json:"id"`
	Addr     string    `json:"addr"`
	Appeared time.Time `json:"appeared"`

	course     Course
	contentDir string
	store      *AttemptStore
	router     *gin.Engine
	now        func() time.Time
	newID      func() string
}

var _ node.Node = (*Server)(nil)

func New(cfg Config) (*Server, error) {
	if err := cfg.Course.Validate(); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = "lms"
	}
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(observability.Component(cfg.Name)))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		ID:         cfg.Name,
		Addr:       cfg.Addr,
		Appeared:   time.Now(),
		course:     cfg.Course,
		contentDir: cfg.ContentDir,
		store:      NewAttemptStore(),
		router:     r,
		now:        time.Now,
		newID:      uuid.NewString,
	}, nil
}

func (s *Server) NodeID() string {
	return s.ID
}

func (s *Server) Kind() string {
	return "lms"
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Attempts() *AttemptStore {
	return s.store
}

// Attempt returns a snapshot of attempt id.
func (s *Server) Attempt(id string) (AttemptInfo, bool) {
	return s.store.Get(id, &s.course)
}

func (s *Server) RegisterRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"course":  s.course.ID,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET(FramesetPath, s.handleFrameset)
	r.POST(PostPath, s.handlePost)

	r.GET("/lms/attempts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"attempts": s.store.List(&s.course),
		})
	})

	r.GET("/lms/attempts/:attempt", func(c *gin.Context) {
		info, ok := s.store.Get(c.Param("attempt"), &s.course)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrUnknownAttempt.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	})

	if s.contentDir != "" {
		r.Static("/content", s.contentDir)
		return
	}
	r.GET("/content/:activity", s.handlePlaceholder)
}

// handleFrameset starts an attempt, or resumes ?attempt=id, and delivers its current activity.
func (s *Server) handleFrameset(c *gin.Context) {
	id := c.Query("attempt")
	if id == "" {
		a := s.store.Create(s.newID(), s.now())
		id = a.ID
		log.Info().Str("attempt", id).Str("course", s.course.ID).Msg("attempt started")
	}
	var page wire.Page
	err := s.store.Update(id, func(a *Attempt) error {
		page = s.page(a, newResult(!a.Closed))
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, pageContentType, []byte(page.Encode()))
}

func (s *Server) handlePost(c *gin.Context) {
	var fields wire.PostFields
	if err := c.ShouldBind(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var page wire.Page
	err := s.store.Update(fields.AttemptID, func(a *Attempt) error {
		page = s.process(a, fields)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("attempt", fields.AttemptID).Msg("post rejected")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if page.Error != "" {
		log.Warn().Str("attempt", fields.AttemptID).Str("command", fields.Command).Str("error", page.Error).Msg("post applied with errors")
	}
	c.Data(http.StatusOK, pageContentType, []byte(page.Encode()))
}

func (s *Server) handlePlaceholder(c *gin.Context) {
	i, ok := s.course.index(c.Param("activity"))
	if !ok {
		c.String(http.StatusNotFound, "unknown activity")
		return
	}
	act := s.course.Activities[i]
	title := html.EscapeString(act.Title)
	if title == "" {
		title = html.EscapeString(act.ID)
	}
	body := fmt.Sprintf("<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1></body></html>", title, title)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	return node.Serve(ctx, s, s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

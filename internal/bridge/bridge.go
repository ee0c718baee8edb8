// Package bridge exposes the attached RTE API object to content over HTTP, along with
// the frame-load and navigation hooks a browser host reports through.
package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/command"
	"github.com/danmuck/rtectl/internal/frameset"
	"github.com/danmuck/rtectl/internal/node"
	"github.com/danmuck/rtectl/internal/observability"
)

var (
	ErrNoAPI        = errors.New("bridge: no api attached")
	ErrNoController = errors.New("bridge: no frameset bound")
)

// Runner executes fn on the goroutine that owns the session.
type Runner interface {
	Call(ctx context.Context, fn func()) error
}

// Controller is the frameset surface the bridge drives. *frameset.Manager implements it.
type Controller interface {
	RegisterFrame(frame frameset.Frame, form frameset.Form)
	OnContentLoaded()
	Next() bool
	Previous() bool
	Choice(activityID string) bool
	TOCChoice(activityID string) bool
	Submit() bool
	Save() bool
	Close()
	ActivityID() string
	AttemptID() string
	View() frameset.View
	PostInProgress() bool
	Pending() []command.Entry
}

type Config struct {
	Name        string
	Addr        string
	CorsOrigins []string
	CallTimeout time.Duration
}

type Bridge struct {
	ID       string    `json:"id"`
	Addr     string    `json:"addr"`
	Appeared time.Time `json:"appeared"`

	runner  Runner
	timeout time.Duration
	router  *gin.Engine

	// Owned by the runner goroutine.
	api  apisite.API
	ctrl Controller
}

var (
	_ node.Node      = (*Bridge)(nil)
	_ apisite.Binder = (*Bridge)(nil)
	_ Controller     = (*frameset.Manager)(nil)
)

func New(cfg Config, runner Runner) *Bridge {
	if cfg.Name == "" {
		cfg.Name = "bridge"
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 5 * time.Second
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

	return &Bridge{
		ID:       cfg.Name,
		Addr:     cfg.Addr,
		Appeared: time.Now(),
		runner:   runner,
		timeout:  cfg.CallTimeout,
		router:   r,
	}
}

func (b *Bridge) NodeID() string {
	return b.ID
}

func (b *Bridge) Kind() string {
	return "bridge"
}

func (b *Bridge) HTTPRouter() *gin.Engine {
	return b.router
}

// Attach publishes api to content. Call it on the runner goroutine.
func (b *Bridge) Attach(api apisite.API) {
	b.api = api
	if api != nil {
		log.Debug().Str("version", string(api.Version())).Msg("api attached")
	}
}

// Detach hides the API from content.
func (b *Bridge) Detach() {
	b.api = nil
	log.Debug().Msg("api detached")
}

// Bind sets the frameset the navigation routes drive. Call it before serving.
func (b *Bridge) Bind(ctrl Controller) {
	b.ctrl = ctrl
}

// Serve listens on the configured address until ctx is cancelled.
func (b *Bridge) Serve(ctx context.Context) error {
	return node.Serve(ctx, b, b.Addr)
}

// run executes fn on the runner with the call timeout applied.
func (b *Bridge) run(ctx context.Context, fn func()) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.runner.Call(ctx, fn)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

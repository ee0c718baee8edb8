package bridge

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/command"
	"github.com/danmuck/rtectl/internal/frameset"
	"github.com/danmuck/rtectl/internal/rte"
)

// CallRequest is one API call from content, e.g. {"method":"SetValue","args":["cmi.location","p2"]}.
type CallRequest struct {
	Method string `json:"method" binding:"required"`
	Args   []any  `json:"args"`
}

// CallResponse carries the call's return value. Version is the API object's own version
// property ("1.0" for 2004, absent for 1.2); Standard names the SCORM edition.
type CallResponse struct {
	Result   string `json:"result"`
	Version  string `json:"version,omitempty"`
	Standard string `json:"standard"`
}

type Status struct {
	Activity       string          `json:"activity"`
	Attempt        string          `json:"attempt"`
	View           string          `json:"view"`
	PostInProgress bool            `json:"post_in_progress"`
	Pending        []command.Entry `json:"pending"`
	APIVersion     string          `json:"api_version,omitempty"`
	APIStandard    string          `json:"api_standard,omitempty"`
}

func (b *Bridge) RegisterRoutes() {
	r := b.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(b.Appeared).String(),
			"service": b.ID,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/call", b.handleCall)
	api.GET("/version", b.handleVersion)

	r.GET("/status", b.handleStatus)
	r.POST("/frames/:frame/loaded", b.handleFrameLoaded)
	r.POST("/nav/:action", b.handleNav)
}

func (b *Bridge) handleCall(c *gin.Context) {
	var req CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var (
		resp   CallResponse
		errAPI error
	)
	err := b.run(c.Request.Context(), func() {
		if b.api == nil {
			errAPI = ErrNoAPI
			return
		}
		resp.Version = rte.ObjectVersion(b.api)
		resp.Standard = string(b.api.Version())
		resp.Result, errAPI = rte.Invoke(b.api, req.Method, req.Args...)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	switch {
	case errors.Is(errAPI, ErrNoAPI):
		c.JSON(http.StatusNotFound, gin.H{"error": errAPI.Error()})
	case errAPI != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errAPI.Error()})
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (b *Bridge) handleVersion(c *gin.Context) {
	var attached apisite.API
	if err := b.run(c.Request.Context(), func() { attached = b.api }); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if attached == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNoAPI.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"version":  rte.ObjectVersion(attached),
		"standard": string(attached.Version()),
	})
}

func (b *Bridge) handleStatus(c *gin.Context) {
	var (
		st Status
		ok bool
	)
	err := b.run(c.Request.Context(), func() {
		if b.ctrl == nil {
			return
		}
		ok = true
		st = Status{
			Activity:       b.ctrl.ActivityID(),
			Attempt:        b.ctrl.AttemptID(),
			View:           string(b.ctrl.View()),
			PostInProgress: b.ctrl.PostInProgress(),
			Pending:        b.ctrl.Pending(),
		}
		if b.api != nil {
			st.APIVersion = rte.ObjectVersion(b.api)
			st.APIStandard = string(b.api.Version())
		}
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNoController.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// handleFrameLoaded takes load reports from a browser host. The post frame reports
// through the transport, not here.
func (b *Bridge) handleFrameLoaded(c *gin.Context) {
	frame := frameset.Frame(c.Param("frame"))
	if !knownFrame(frame) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown frame"})
		return
	}
	b.control(c, func(ctrl Controller) bool {
		if frame == frameset.FrameContent {
			ctrl.OnContentLoaded()
			return true
		}
		ctrl.RegisterFrame(frame, nil)
		return true
	})
}

func (b *Bridge) handleNav(c *gin.Context) {
	action := strings.ToLower(c.Param("action"))
	id := c.Query("activity")
	var fn func(Controller) bool
	switch action {
	case "next":
		fn = Controller.Next
	case "previous":
		fn = Controller.Previous
	case "submit":
		fn = Controller.Submit
	case "save":
		fn = Controller.Save
	case "choice", "toc":
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "activity query parameter required"})
			return
		}
		fn = func(ctrl Controller) bool {
			if action == "toc" {
				return ctrl.TOCChoice(id)
			}
			return ctrl.Choice(id)
		}
	case "close":
		fn = func(ctrl Controller) bool {
			ctrl.Close()
			return true
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown navigation action"})
		return
	}
	b.control(c, fn)
}

// control runs fn against the bound frameset and reports whether it was accepted.
func (b *Bridge) control(c *gin.Context, fn func(Controller) bool) {
	var accepted, bound bool
	err := b.run(c.Request.Context(), func() {
		if b.ctrl == nil {
			return
		}
		bound = true
		accepted = fn(b.ctrl)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if !bound {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNoController.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": accepted})
}

func knownFrame(f frameset.Frame) bool {
	switch f {
	case frameset.FrameTitle, frameset.FrameTOC, frameset.FrameNavOpen, frameset.FrameNavClosed, frameset.FrameContent:
		return true
	}
	return false
}

// Package node is the common shape of the HTTP-serving components: the loopback LMS and
// the content bridge.
package node

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Node interface {
	NodeID() string
	Kind() string
	HTTPRouter() *gin.Engine
	RegisterRoutes()
}

// ServeListener registers n's routes and serves them on ln until ctx is cancelled.
func ServeListener(ctx context.Context, n Node, ln net.Listener) error {
	n.RegisterRoutes()
	srv := &http.Server{Handler: n.HTTPRouter(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Str("node", n.NodeID()).Msg("shutdown")
		}
	}()
	log.Info().Str("node", n.NodeID()).Str("kind", n.Kind()).Str("addr", ln.Addr().String()).Msg("serving")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve listens on addr and serves until ctx is cancelled.
func Serve(ctx context.Context, n Node, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, n, ln)
}

package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/rtectl/internal/testutil/testlog"
)

func TestRequestMiddleware(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), RequestMetricsMiddleware("test"))
	r.GET("/lms/attempts/:attempt", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/lms/attempts/a-1?x=1", nil)
	req.Header.Set(HeaderRequestID, "req-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "req-7", w.Header().Get(HeaderRequestID))
	require.Contains(t, buf.String(), `"route":"/lms/attempts/:attempt"`)
	require.Contains(t, buf.String(), `"request_id":"req-7"`)
	require.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))
	require.Empty(t, buf.String(), "probe routes log below debug")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Contains(t, buf.String(), `"route":"unmatched"`)
}

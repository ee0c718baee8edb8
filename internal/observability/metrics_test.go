package observability

import (
	"testing"
	"time"

	"github.com/danmuck/rtectl/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("lms", "POST", "/frameset", 200, 12*time.Millisecond)
	RecordRTECall("2004", "SetValue", "0")
	RecordPost("submitted")
	RecordFormRetry()
	RecordLMSCommand("N", true)
}

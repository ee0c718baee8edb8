package frameset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danmuck/rtectl/internal/testutil/testlog"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := NewLoop(8)
	go loop.Run(ctx)

	var got []int
	for i := range 5 {
		loop.Post(func() { got = append(got, i) })
	}
	require.NoError(t, loop.Call(ctx, func() {}))
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoopAfterFunc(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := NewLoop(1)
	go loop.Run(ctx)

	fired := make(chan struct{})
	loop.AfterFunc(10*time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled task never ran")
	}
}

func TestLoopCallAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(0)
	stopped := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped
	require.ErrorIs(t, loop.Call(context.Background(), func() {}), ErrLoopStopped)
}

func TestLoopCallTimeoutAbandonsTask(t *testing.T) {
	testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := NewLoop(4)
	go loop.Run(ctx)

	release := make(chan struct{})
	loop.Post(func() { <-release })

	ran := false
	callCtx, callCancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer callCancel()
	require.ErrorIs(t, loop.Call(callCtx, func() { ran = true }), context.DeadlineExceeded)

	close(release)
	require.NoError(t, loop.Call(ctx, func() {}))
	require.False(t, ran, "a timed-out call must not run later")
}

// internal/service/scheduler_test.go
package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/loopitalfinance/loopitalfrontend-sub001/internal/util"
)

func TestSchedulerTicksAtFixedPeriod(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("test", 20*time.Millisecond, func(context.Context) {
		runs.Add(1)
	}, util.GetLogger())

	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(90 * time.Millisecond)
	assert.GreaterOrEqual(t, runs.Load(), int32(3), "immediate run plus periodic ticks")
}

func TestSchedulerStopIssuesNoFurtherTicks(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("test", 20*time.Millisecond, func(context.Context) {
		runs.Add(1)
	}, util.GetLogger())

	s.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	// Let any tick already in flight land before snapshotting.
	time.Sleep(10 * time.Millisecond)
	after := runs.Load()

	// Wait well past one additional period: nothing new may fire.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestSchedulerDoubleStopIsNoOp(t *testing.T) {
	s := NewScheduler("test", time.Minute, func(context.Context) {}, util.GetLogger())
	s.Start(context.Background())

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

func TestSchedulerStopBeforeStartIsNoOp(t *testing.T) {
	s := NewScheduler("test", time.Minute, func(context.Context) {}, util.GetLogger())
	assert.NotPanics(t, s.Stop)
}

func TestSchedulerDoubleStartIsNoOp(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("test", time.Hour, func(context.Context) {
		runs.Add(1)
	}, util.GetLogger())

	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "second Start must not arm a second loop")
}

func TestSchedulerSlowTaskDoesNotBlockTicks(t *testing.T) {
	var started atomic.Int32
	s := NewScheduler("test", 15*time.Millisecond, func(context.Context) {
		started.Add(1)
		time.Sleep(200 * time.Millisecond) // slower than several periods
	}, util.GetLogger())

	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.GreaterOrEqual(t, started.Load(), int32(3), "overlapping runs are permitted, ticks never skip")
}

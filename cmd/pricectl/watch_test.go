package main

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"PriceBoard/internal/model"

	"github.com/stretchr/testify/assert"
)

type periodLog struct {
	mu   sync.Mutex
	seen []model.Period
}

func (l *periodLog) record(p model.Period) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = append(l.seen, p)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchPeriods did not return")
	}
}

func TestWatchPeriods_RefreshesValidLines(t *testing.T) {
	var log periodLog
	watchPeriods(context.Background(), strings.NewReader("week\n\nbogus\n 3months \nall\n"), log.record)

	assert.ElementsMatch(t, []model.Period{model.PeriodWeek, model.PeriodThreeMonths, model.PeriodAll}, log.seen)
}

func TestWatchPeriods_CancelledWhileStdinIdle(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var log periodLog
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchPeriods(ctx, pr, log.record)
	}()

	cancel()
	waitDone(t, done)
	assert.Empty(t, log.seen)
}

func TestWatchPeriods_StopsAfterCancelMidStream(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var log periodLog
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchPeriods(ctx, pr, log.record)
	}()

	_, err := pw.Write([]byte("month\n"))
	assert.NoError(t, err)
	assert.Eventually(t, func() bool {
		log.mu.Lock()
		defer log.mu.Unlock()
		return len(log.seen) == 1
	}, time.Second, time.Millisecond)

	cancel()
	waitDone(t, done)
	assert.Equal(t, []model.Period{model.PeriodMonth}, log.seen)
}

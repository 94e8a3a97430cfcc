package main

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"PriceBoard/internal/model"
	"PriceBoard/pkg/logger"
)

// watchPeriods reads one period token per line from r and runs refresh for
// each valid token in its own goroutine. It returns once r is exhausted or
// ctx is done, after the refreshes it started have finished.
func watchPeriods(ctx context.Context, r io.Reader, refresh func(model.Period)) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("read stdin", logger.ErrorField(err))
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			p, err := model.ParsePeriod(line)
			if err != nil {
				logger.Warn("ignoring period", logger.String("input", line), logger.ErrorField(err))
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				refresh(p)
			}()
		}
	}
}

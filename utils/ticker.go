package utils

import (
	"context"
	"time"

	"go.viam.com/jointkin/logging"
)

// SlowLogger starts a goroutine that logs every few seconds as long as the context has not
// timed out or was not cancelled, and the returned stop func was not called.
func SlowLogger(ctx context.Context, msg, fieldName, fieldVal string, logger logging.Logger) func() {
	return slowLogger(ctx, msg, fieldName, fieldVal, logger, 2*time.Second)
}

func slowLogger(ctx context.Context, msg, fieldName, fieldVal string, logger logging.Logger, first time.Duration) func() {
	slowTicker := time.NewTicker(first)
	firstTick := true

	ctxWithCancel, cancel := context.WithCancel(ctx)
	startTime := time.Now()
	go func() {
		for {
			select {
			case <-slowTicker.C:
				elapsed := time.Since(startTime).Round(time.Millisecond).String()
				logger.Warnw(msg, fieldName, fieldVal, "time_elapsed", elapsed)
				if firstTick {
					slowTicker.Reset(first * 3 / 2)
					firstTick = false
				} else {
					slowTicker.Reset(first * 5 / 2)
				}
			case <-ctxWithCancel.Done():
				return
			}
		}
	}()
	return func() { slowTicker.Stop(); cancel() }
}

package utils

import (
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// Guard collects the cleanup of resources opened while building something, such as the log
// appenders of a command. If building fails, a deferred OnFail releases them; once it succeeds,
// Success hands their release to the caller.
//
//	guard := NewGuard()
//	defer guard.OnFail()
//	guard.Add(appender.Close)
//	if err != nil { return err }
//	closeAll := guard.Success()
type Guard struct {
	closers []func() error
	success bool
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Add registers a cleanup func. Cleanups run in reverse order of registration.
func (guard *Guard) Add(closer func() error) {
	guard.closers = append(guard.closers, closer)
}

// OnFail runs every cleanup unless Success was called.
func (guard *Guard) OnFail() {
	if !guard.success {
		goutils.UncheckedError(guard.close())
	}
}

// Success marks the build as done and returns a func running every cleanup.
func (guard *Guard) Success() func() error {
	guard.success = true
	return guard.close
}

func (guard *Guard) close() error {
	var err error
	for i := len(guard.closers) - 1; i >= 0; i-- {
		err = multierr.Combine(err, guard.closers[i]())
	}
	guard.closers = nil
	return err
}

// Package retry provides event notification hooks for retry sessions
package retry

import "time"

// Listener receives notifications from a running retry session. Callbacks
// execute synchronously on the goroutine running the session; keep them
// fast. Panics from a listener propagate uncaught, like predicate panics.
type Listener interface {
	// OnRetryScheduled fires after a failed attempt when another attempt
	// will follow. err is nil when the attempt produced a value that failed
	// validation, otherwise it is the retryable error.
	OnRetryScheduled(attempt int, delay time.Duration, err error)

	// OnTermination fires exactly once when the session reaches a terminal
	// state. err is nil only when reason is Succeeded.
	OnTermination(attempts int, reason TerminationReason, err error)
}

// Logger is the logging interface accepted by NewLoggingListener. It matches
// the printf-style leveled loggers most logging libraries expose.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LoggingListener logs retry scheduling and termination through a Logger.
type LoggingListener struct {
	logger Logger
}

// NewLoggingListener creates a Listener that reports session events to the
// provided logger. A nil logger yields a no-op listener.
func NewLoggingListener(logger Logger) *LoggingListener {
	return &LoggingListener{logger: logger}
}

// OnRetryScheduled logs the upcoming retry at debug level.
func (l *LoggingListener) OnRetryScheduled(attempt int, delay time.Duration, err error) {
	if l.logger == nil {
		return
	}
	if err != nil {
		l.logger.Debugf("attempt %d failed: %v, retrying in %v", attempt, err, delay)
		return
	}
	l.logger.Debugf("attempt %d produced invalid result, retrying in %v", attempt, delay)
}

// OnTermination logs the final state: info on success, warn otherwise.
func (l *LoggingListener) OnTermination(attempts int, reason TerminationReason, err error) {
	if l.logger == nil {
		return
	}
	if reason == Succeeded {
		l.logger.Infof("succeeded after %d attempt(s)", attempts)
		return
	}
	l.logger.Warnf("gave up after %d attempt(s): %s: %v", attempts, reason, err)
}

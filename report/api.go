package report

import (
	"fmt"
	"os"
)

// ReportICE reports an internal toolchain error.  These are errors that
// specifically result from a bug or unexpected condition occurring within the
// tool: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	ensureReporter()

	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause the
// current tool to stop immediately.  However, they are expected errors that
// generally result from invalid input or configuration of some form: a missing
// input file, a malformed summary, etc.
func ReportFatal(message string, args ...interface{}) {
	ensureReporter()

	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportStdError reports a non-fatal, standard Go error.  The tag names the
// operation or input the error applies to.
func ReportStdError(tag string, err error) {
	ensureReporter()

	if rep.logLevel >= LogLevelError {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.isErr = true

		displayStdError(tag, err)
	}
}

// ReportWarning reports a non-fatal warning message.
func ReportWarning(message string, args ...interface{}) {
	ensureReporter()

	if rep.logLevel >= LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayWarning(fmt.Sprintf(message, args...))
	}
}

// LogVerbose logs an informational message about the progress of the current
// tool.  It only displays if the log level is verbose.
func LogVerbose(message string, args ...interface{}) {
	ensureReporter()

	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfo(fmt.Sprintf(message, args...))
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	ensureReporter()

	return rep.isErr
}

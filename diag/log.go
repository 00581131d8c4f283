// Package diag carries the sandbox diagnostics: the logger and the status sink.
package diag

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger creates the process logger at the given level name (panic, fatal,
// error, warn, info, debug). A nil out writes to stderr.
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	if out == nil {
		out = os.Stderr
	}

	return &logrus.Logger{
		Out: out,
		Formatter: &CustomTextFormatter{
			logrus.TextFormatter{
				ForceColors:      out == os.Stderr,
				FullTimestamp:    true,
				CallerPrettyfier: hideCaller,
			},
		},
		Hooks:        make(logrus.LevelHooks),
		Level:        lvl,
		ReportCaller: true,
		ExitFunc:     os.Exit,
	}, nil
}

// the message prefix replaces logrus' own caller fields
func hideCaller(*runtime.Frame) (string, string) {
	return "", ""
}

// CustomTextFormatter prefixes every message with the calling file and line
type CustomTextFormatter struct {
	logrus.TextFormatter
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Message = fmt.Sprintf("[%-15s:%03d]%s", path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}

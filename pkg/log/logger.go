package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-tile-tracer/pkg/core"
	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The active verbosity, kept across sink changes
var currentLevel = Notice

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	logging.SetBackend(leveledBackend)
	SetLevel(currentLevel)
}

// Set logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	default:
		loggerLevel = logging.NOTICE
	}

	currentLevel = level
	leveledBackend.SetLevel(loggerLevel, "")
}

// printfLogger forwards Printf calls to a leveled logger at Info level.
type printfLogger struct {
	logger Logger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// Printf adapts a leveled logger to the core.Logger interface taken by the
// renderer. Messages are logged at Info level.
func Printf(logger Logger) core.Logger {
	return printfLogger{logger: logger}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}

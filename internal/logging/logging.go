// Package logging sets up the run logger: timestamped lines on the console
// and the same lines, uncolored, appended to a per-day run log file.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// TimestampFormat prefixes every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// LogFileName returns the run log file name for the day of t.
func LogFileName(t time.Time) string {
	return "run_litmerge_" + t.Format("20060102") + ".log"
}

// Options configures New.
type Options struct {
	Level   logrus.Level
	NoColor bool
	// Console receives colored output. Defaults to stderr.
	Console io.Writer
	// Dir, when set, receives the run log file.
	Dir string
}

// Logger is a logrus logger bound to an optional run log file.
type Logger struct {
	*logrus.Logger
	FilePath string

	file *os.File
}

// New builds a logger. Close must be called to release the run log file.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(console)
	l.SetLevel(opts.Level)
	l.SetFormatter(&Formatter{NoColor: opts.NoColor})

	out := &Logger{Logger: l}
	if opts.Dir == "" {
		return out, nil
	}

	path := filepath.Join(opts.Dir, LogFileName(time.Now()))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	l.AddHook(NewFileHook(f))
	out.FilePath = path
	out.file = f

	return out, nil
}

// Close closes the run log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Formatter renders "2006-01-02 15:04:05 - message key=value".
// Warnings and errors carry a level label and, unless NoColor is set,
// a level color.
type Formatter struct {
	NoColor bool
}

var levelColors = map[logrus.Level]*color.Color{
	logrus.DebugLevel: color.New(color.Faint),
	logrus.TraceLevel: color.New(color.Faint),
	logrus.InfoLevel:  color.New(color.FgCyan),
	logrus.WarnLevel:  color.New(color.FgYellow),
	logrus.ErrorLevel: color.New(color.FgRed, color.Bold),
	logrus.FatalLevel: color.New(color.FgRed, color.Bold),
	logrus.PanicLevel: color.New(color.FgRed, color.Bold),
}

func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString(e.Time.Format(TimestampFormat))
	b.WriteString(" - ")
	if e.Level <= logrus.WarnLevel {
		b.WriteString(levelLabel(e.Level))
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	line := b.String()
	if !f.NoColor {
		if c, ok := levelColors[e.Level]; ok {
			line = c.Sprint(line)
		}
	}
	return []byte(line + "\n"), nil
}

func levelLabel(lvl logrus.Level) string {
	switch lvl {
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel:
		return "ERROR"
	}
	return "FATAL"
}

// FileHook copies every entry the logger emits to a writer.
type FileHook struct {
	mu        sync.Mutex
	w         io.Writer
	formatter logrus.Formatter
}

// NewFileHook returns a hook writing uncolored lines to w.
func NewFileHook(w io.Writer) *FileHook {
	return &FileHook{w: w, formatter: &Formatter{NoColor: true}}
}

func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FileHook) Fire(e *logrus.Entry) error {
	line, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(line)
	return err
}

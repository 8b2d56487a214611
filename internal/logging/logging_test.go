package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLogFileName(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	if got := LogFileName(day); got != "run_litmerge_20240309.log" {
		t.Errorf("LogFileName() = %q", got)
	}
}

func TestFormatter(t *testing.T) {
	ts := time.Date(2024, 3, 9, 8, 5, 1, 0, time.UTC)

	tests := []struct {
		name  string
		entry *logrus.Entry
		want  string
	}{
		{
			name:  "info",
			entry: &logrus.Entry{Time: ts, Level: logrus.InfoLevel, Message: "Done!"},
			want:  "2024-03-09 08:05:01 - Done!\n",
		},
		{
			name: "warning with sorted fields",
			entry: &logrus.Entry{Time: ts, Level: logrus.WarnLevel, Message: "invalid count",
				Data: logrus.Fields{"row": 4, "field": "TC"}},
			want: "2024-03-09 08:05:01 - WARNING: invalid count field=TC row=4\n",
		},
		{
			name:  "error",
			entry: &logrus.Entry{Time: ts, Level: logrus.ErrorLevel, Message: "boom"},
			want:  "2024-03-09 08:05:01 - ERROR: boom\n",
		},
	}

	f := &Formatter{NoColor: true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(tt.entry)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_WritesRunLog(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	log, err := New(Options{Level: logrus.InfoLevel, NoColor: true, Console: &console, Dir: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("Reading input")
	log.Debug("hidden")
	log.WithField("row", 2).Warn("bad value")
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if filepath.Dir(log.FilePath) != dir {
		t.Errorf("FilePath = %q, want it under %q", log.FilePath, dir)
	}
	data, err := os.ReadFile(log.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	file := string(data)

	for _, out := range []string{console.String(), file} {
		if !strings.Contains(out, "Reading input") || !strings.Contains(out, "WARNING: bad value row=2") {
			t.Errorf("missing expected lines:\n%s", out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("debug line logged at info level:\n%s", out)
		}
	}
	if strings.Contains(file, "\x1b[") {
		t.Errorf("run log contains color codes:\n%q", file)
	}
}

func TestNew_AppendsToSameDayLog(t *testing.T) {
	dir := t.TempDir()

	for _, msg := range []string{"first run", "second run"} {
		log, err := New(Options{Level: logrus.InfoLevel, NoColor: true, Console: &bytes.Buffer{}, Dir: dir})
		if err != nil {
			t.Fatal(err)
		}
		log.Info(msg)
		log.Close()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d log files, want 1", len(entries))
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.Contains(string(data), "first run") || !strings.Contains(string(data), "second run") {
		t.Errorf("run log should accumulate runs:\n%s", data)
	}
}

func TestNew_NoDir(t *testing.T) {
	var console bytes.Buffer
	log, err := New(Options{Level: logrus.InfoLevel, NoColor: true, Console: &console})
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	log.Info("console only")
	if log.FilePath != "" {
		t.Errorf("FilePath = %q, want empty", log.FilePath)
	}
	if !strings.Contains(console.String(), "console only") {
		t.Errorf("console = %q", console.String())
	}
}

func TestFileHook(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	l.AddHook(NewFileHook(&buf))

	l.Error("written through hook")
	if !strings.Contains(buf.String(), "ERROR: written through hook") {
		t.Errorf("hook output = %q", buf.String())
	}
}

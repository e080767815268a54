// Package logger provides structured logging and gesture history export.
package logger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

// Logger is the application logger.
type Logger struct {
	*logrus.Logger
	mu          sync.Mutex
	logFile     *lumberjack.Logger
	config      *config.LoggingConfig
	hook        *BufferedHook
	gestures    bool
	initialized bool
}

var (
	instance *Logger
	once     sync.Once
)

// Get returns the singleton logger instance.
func Get() *Logger {
	once.Do(func() {
		instance = &Logger{
			Logger:   logrus.New(),
			gestures: true,
		}
	})
	return instance
}

// Init initializes the logger with the provided configuration.
func (l *Logger) Init(cfg *config.LoggingConfig, configDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.config = cfg

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
	})

	if cfg.ToFile {
		logPath := resolvePath(cfg.FilePath, configDir)

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		l.logFile = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    ParseMaxSize(cfg.MaxFileSize),
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}

		// Write to both file and stdout
		l.SetOutput(io.MultiWriter(os.Stdout, l.logFile))
	} else {
		l.SetOutput(os.Stdout)
	}

	l.initialized = true
	l.Info("Logger initialized")
	return nil
}

// ParseMaxSize converts "10MB" style sizes to megabytes. Anything
// unparsable yields 10.
func ParseMaxSize(s string) int {
	maxSize := 10
	if s != "" {
		var n int
		if _, err := fmt.Sscanf(s, "%dMB", &n); err == nil && n > 0 {
			maxSize = n
		}
	}
	return maxSize
}

func resolvePath(path, dir string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// AttachBuffer installs a BufferedHook keeping the last capacity entries.
func (l *Logger) AttachBuffer(capacity int) *LogBuffer {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hook == nil {
		l.hook = NewBufferedHook(capacity)
		l.AddHook(l.hook)
	}
	return l.hook.GetBuffer()
}

// SetGestureLogging turns per-gesture info logging on or off.
func (l *Logger) SetGestureLogging(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gestures = on
}

// ExportLogs exports the log buffer to a file.
func (l *Logger) ExportLogs(path string, entries []LogEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, entry := range entries {
		_, err := fmt.Fprintf(file, "[%s] %s: %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Level,
			entry.Message)
		if err != nil {
			return err
		}
	}

	return nil
}

var gestureHeader = []string{
	"Timestamp",
	"Source",
	"Window",
	"Button",
	"Outcome",
	"Command",
	"Target",
	"Reason",
}

// ExportGesturesCSV writes gesture history to a new CSV file.
func (l *Logger) ExportGesturesCSV(path string, records []*models.GestureRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteGesturesCSV(file, records); err != nil {
		return err
	}
	l.Infof("Exported %d gestures to %s", len(records), path)
	return nil
}

// WriteGesturesCSV writes a header and one row per record to w.
func WriteGesturesCSV(w io.Writer, records []*models.GestureRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(gestureHeader); err != nil {
		return err
	}

	for _, r := range records {
		target := ""
		if r.Target != 0 {
			target = utils.FormatHandle(r.Target)
		}
		command := ""
		if r.Command != models.CommandNone {
			command = r.Command.String()
		}
		row := []string{
			r.Timestamp.Format("2006-01-02 15:04:05.000"),
			string(r.Source),
			utils.FormatHandle(r.Window),
			r.Button.String(),
			string(r.Outcome),
			command,
			target,
			r.Reason,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Close closes the logger and associated resources.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		l.logFile.Close()
	}

	l.Info("Logger closed")
}

// WithFields is a convenience wrapper for logrus.WithFields.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

// Component returns an entry tagged with a component name.
func (l *Logger) Component(name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Chrome logs a chrome-related message.
func (l *Logger) Chrome(format string, args ...interface{}) {
	l.Component("chrome").Infof(format, args...)
}

// Layout logs a layout-related message at debug level.
func (l *Logger) Layout(format string, args ...interface{}) {
	l.Component("layout").Debugf(format, args...)
}

// Workspace logs a workspace-related message.
func (l *Logger) Workspace(format string, args ...interface{}) {
	l.Component("workspace").Infof(format, args...)
}

// Gesture logs a finished press gesture. Aborted gestures are warnings.
func (l *Logger) Gesture(r *models.GestureRecord) {
	entry := l.WithFields(logrus.Fields{
		"component": "press",
		"source":    string(r.Source),
		"window":    utils.FormatHandle(r.Window),
		"button":    r.Button.String(),
		"outcome":   string(r.Outcome),
	})
	if r.Command != models.CommandNone {
		entry = entry.WithField("command", r.Command.String())
	}
	if r.Reason != "" {
		entry = entry.WithField("reason", r.Reason)
	}

	switch {
	case r.Outcome == models.OutcomeAborted:
		entry.Warn("Press aborted")
	case l.gesturesOn():
		entry.Info("Press " + string(r.Outcome))
	default:
		entry.Debug("Press " + string(r.Outcome))
	}
}

func (l *Logger) gesturesOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gestures
}

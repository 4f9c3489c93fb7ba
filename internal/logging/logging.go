package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxLogFiles is the rotation limit when none is configured
	DefaultMaxLogFiles = 1000

	envDebug       = "KEYMIRROR_DEBUG"
	envDebugFile   = "KEYMIRROR_DEBUG_FILE"
	envMaxLogFiles = "KEYMIRROR_MAX_LOG_FILES"
)

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize is called.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Options configures Initialize
type Options struct {
	Debug       bool
	DebugFile   string
	MaxLogFiles int
	// Notice receives the "debug mode enabled" line; nil means stderr
	Notice io.Writer
}

// Initialize sets up the logger. Environment variables are inherited when
// the matching option still holds its zero or default value.
func Initialize(opts Options) (string, error) {
	if os.Getenv(envDebug) == "1" {
		opts.Debug = true
	}
	if env := os.Getenv(envDebugFile); env != "" && opts.DebugFile == "" {
		opts.DebugFile = env
	}
	if env := os.Getenv(envMaxLogFiles); env != "" && opts.MaxLogFiles == DefaultMaxLogFiles {
		if parsed, err := strconv.Atoi(env); err == nil {
			opts.MaxLogFiles = parsed
		}
	}

	if !opts.Debug && opts.DebugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	var logFilePath string

	if opts.DebugFile != "" {
		// Custom file, no rotation
		logFilePath = opts.DebugFile
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
	} else {
		logDir, err := LogDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}

		if opts.MaxLogFiles > 0 {
			if err := rotateLogs(logDir, opts.MaxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}

		logFilePath = filepath.Join(logDir, fmt.Sprintf("%s.log", uuid.New().String()))
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Only announce when debug was requested directly, not inherited
	if os.Getenv(envDebug) == "" {
		Logger.Info("Debug logging initialized", "log_file", logFilePath)
		notice := opts.Notice
		if notice == nil {
			notice = os.Stderr
		}
		fmt.Fprintf(notice, "Debug mode enabled. Logs: %s\n", logFilePath)
	}

	return logFilePath, nil
}

// rotateLogs removes the oldest .log files so that one more fits under maxLogFiles
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		modTime time.Time
		path    string
	}
	var logFiles []logFileInfo

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{
			modTime: info.ModTime(),
			path:    filepath.Join(logDir, entry.Name()),
		})
	}

	if len(logFiles) < maxLogFiles {
		return nil
	}

	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.Before(logFiles[j].modTime)
	})

	numToDelete := len(logFiles) - maxLogFiles + 1
	for i := 0; i < numToDelete && i < len(logFiles); i++ {
		if err := os.Remove(logFiles[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", logFiles[i].path, err)
		}
	}

	return nil
}

// LogDir returns the OS-specific log directory
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "keymirror"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "keymirror"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "keymirror", "logs"), nil
	default:
		return filepath.Join(homeDir, ".keymirror", "logs"), nil
	}
}

// Package logger handles the creation and management of log files and
// directories. Each program run gets its own timestamped session directory.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nearwave/nearwave/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Manager handles the creation and management of log files and directories.
type Manager struct {
	logDir            string // Base directory for all logs
	currentSessionDir string // Path to the current session's log directory
	level             string // Logging level (debug, info, warn, error)
	maxLogsToKeep     int    // Maximum number of log sessions to retain
}

// NewManager creates a new Manager instance.
func NewManager(logDir string, debugCfg *config.Debug) *Manager {
	return &Manager{
		logDir:        logDir,
		level:         debugCfg.LogLevel,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
	}
}

// GetLoggers initializes the main and database loggers.
// Returns separate loggers for main application and database logging.
func (m *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	if err := m.setupLogDirectories(); err != nil {
		return nil, nil, err
	}

	mainLogger, err := m.initLogger(filepath.Join(m.currentSessionDir, "main.log"), true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	dbLogger, err := m.initLogger(filepath.Join(m.currentSessionDir, "database.log"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database logger: %w", err)
	}

	return mainLogger, dbLogger, nil
}

// GetWorkerLogger creates a logger for background workers.
// Each worker gets its own log file in the session directory.
func (m *Manager) GetWorkerLogger(name string) *zap.Logger {
	if m.currentSessionDir == "" {
		if err := m.setupLogDirectories(); err != nil {
			return zap.NewNop()
		}
	}

	logger, err := m.initLogger(filepath.Join(m.currentSessionDir, name+".log"), true)
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// setupLogDirectories creates the session directory and prunes old sessions.
func (m *Manager) setupLogDirectories() error {
	if m.currentSessionDir != "" {
		return nil
	}

	sessionDir := filepath.Join(m.logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(sessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session log directory: %w", err)
	}

	m.currentSessionDir = sessionDir
	m.pruneOldSessions()

	return nil
}

// pruneOldSessions removes the oldest session directories beyond the
// retention limit. Failures are ignored; logging must not block startup.
func (m *Manager) pruneOldSessions() {
	if m.maxLogsToKeep <= 0 {
		return
	}

	entries, err := os.ReadDir(m.logDir)
	if err != nil {
		return
	}

	var sessions []string

	for _, entry := range entries {
		if entry.IsDir() {
			sessions = append(sessions, entry.Name())
		}
	}

	if len(sessions) <= m.maxLogsToKeep {
		return
	}

	sort.Strings(sessions)

	for _, name := range sessions[:len(sessions)-m.maxLogsToKeep] {
		_ = os.RemoveAll(filepath.Join(m.logDir, name))
	}
}

// initLogger builds a zap logger writing to the given file, optionally
// mirrored to the console.
func (m *Manager) initLogger(logPath string, console bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(m.level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(logFile), level),
	}

	if console {
		consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.AddSync(os.Stderr), level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

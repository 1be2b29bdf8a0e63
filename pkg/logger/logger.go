package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	// Leveled loggers, shared by the whole process.
	InfoLogger    *log.Logger
	WarningLogger *log.Logger
	ErrorLogger   *log.Logger
)

// SetupLogger initializes the leveled loggers. Output goes to stdout and to a
// dated file under logs/.
func SetupLogger() error {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", currentTime.Format("2006-01-02")))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)

	InfoLogger = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLogger = log.New(multiWriter, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// Info logs at info level.
func Info(format string, v ...interface{}) {
	printf(InfoLogger, "INFO: ", format, v...)
}

// Warning logs at warning level.
func Warning(format string, v ...interface{}) {
	printf(WarningLogger, "WARNING: ", format, v...)
}

// Error logs at error level.
func Error(format string, v ...interface{}) {
	printf(ErrorLogger, "ERROR: ", format, v...)
}

// printf falls back to the default logger when SetupLogger has not run,
// which keeps logging usable from tests.
func printf(l *log.Logger, prefix, format string, v ...interface{}) {
	if l == nil {
		log.Printf(prefix+format, v...)
		return
	}
	l.Printf(format, v...)
}

// Package logger provides the prefixed, colour-coded logger used by every component.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/config"
)

var ErrEmptyPrefix = errors.New("logger prefix is empty")

// Logger writes lines of the form "[PREFIX] [LEVEL] message".
// The prefix is coloured, the level carries its own colour.
type Logger struct {
	out *log.Logger
}

// New creates a logger writing to w with the given prefix and prefix color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		w = io.Discard
	}

	return &Logger{
		out: log.New(w, fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset), log.LstdFlags|log.Lmsgprefix),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print(config.LogInfoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.print(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.print(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) print(color, level, msg string) {
	l.out.Printf("%s[%s]%s %s", color, level, config.LogColorReset, msg)
}

package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

type LevelType int

const (
	ERROR LevelType = iota
	WARN
	INFO
	DEBUG
)

type Log interface {
	Debug(a ...interface{})
	Info(a ...interface{})
	Warn(a ...interface{})
	Error(a ...interface{})
	Output(a ...interface{})
}

type defaultLogger struct {
	logLevel  LevelType
	errLogger *log.Logger
	outLogger *log.Logger
}

// NewDefaultLogger writes log lines to stderr and Output lines to stdout.
func NewDefaultLogger(logLevel LevelType) Log {
	return NewLoggerWithWriters(logLevel, os.Stderr, os.Stdout)
}

func NewLoggerWithWriters(logLevel LevelType, logWriter, outputWriter io.Writer) Log {
	return &defaultLogger{
		logLevel:  logLevel,
		errLogger: log.New(logWriter, "", 0),
		outLogger: log.New(outputWriter, "", 0),
	}
}

func (dl *defaultLogger) Debug(a ...interface{}) {
	dl.print(DEBUG, "[Debug] ", a...)
}

func (dl *defaultLogger) Info(a ...interface{}) {
	dl.print(INFO, "[Info] ", a...)
}

func (dl *defaultLogger) Warn(a ...interface{}) {
	dl.print(WARN, "[Warn] ", a...)
}

func (dl *defaultLogger) Error(a ...interface{}) {
	dl.print(ERROR, "[Error] ", a...)
}

func (dl *defaultLogger) Output(a ...interface{}) {
	dl.outLogger.Println(a...)
}

func (dl *defaultLogger) print(level LevelType, prefix string, a ...interface{}) {
	if dl.logLevel < level {
		return
	}
	dl.errLogger.Println(prefix + fmt.Sprint(a...))
}

// NullLog is a logger that does nothing
type NullLog struct {
}

func (nl *NullLog) Debug(...interface{}) {
}

func (nl *NullLog) Info(...interface{}) {
}

func (nl *NullLog) Warn(...interface{}) {
}

func (nl *NullLog) Error(...interface{}) {
}

func (nl *NullLog) Output(...interface{}) {
}

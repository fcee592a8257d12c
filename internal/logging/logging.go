package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/pterm/pterm"
)

var (
	// messages are written to stderr, stdout carries the rendered diff
	output io.Writer = os.Stderr

	logFileLock sync.Mutex
	logFilePath string
)

func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

// SetLogFile additionally appends every message to the file at path, an empty path disables it
func SetLogFile(path string) {
	logFileLock.Lock()
	defer logFileLock.Unlock()
	logFilePath = path
}

// SetOutput redirects terminal messages, used by the interactive pager which owns the terminal
func SetOutput(writer io.Writer) {
	output = writer
}

func Printfln(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Fprintln(os.Stdout, pterm.Sprintf(format, a...))
}

func Debug(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Debug.WithWriter(output).Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	if pterm.PrintDebugMessages {
		pterm.Info.WithWriter(output).Printfln(format, a...)
	}
}

func Warning(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Warning.WithWriter(output).Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Error.WithWriter(output).Printfln(format, a...)
}

func Fatal(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Fatal.WithWriter(output).WithFatal(false).Printfln(format, a...)
	os.Exit(2)
}

func writeToLogFile(format string, a ...interface{}) {
	if len(format) <= 0 {
		return
	}

	logFileLock.Lock()
	defer logFileLock.Unlock()
	if logFilePath == "" {
		return
	}

	file := openLogFile(logFilePath)
	if file == nil {
		return
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)
	logger := log.New(file, "", log.LstdFlags)
	logger.Printf(format, a...)
}

func openLogFile(path string) *os.File {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		log.Println(err)
		return nil
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Println(err)
		return nil
	}
	return file
}

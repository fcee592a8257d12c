package files

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"pratdiff/internal/logging"
)

// StdinPath selects standard input instead of a file
const StdinPath = "-"

// Contents is the raw content of one input
type Contents struct {
	Raw    []byte
	Binary bool
}

func (c Contents) Text() string {
	return string(c.Raw)
}

func (c Contents) Lines() []string {
	return SplitLines(c.Text())
}

func (c Contents) Equal(other Contents) bool {
	return bytes.Equal(c.Raw, other.Raw)
}

// Reader reads inputs, standard input is only consumed once
type Reader struct {
	Stdin io.Reader

	stdin *Contents
}

func NewReader() *Reader {
	return &Reader{Stdin: os.Stdin}
}

func (r *Reader) Read(path string) (Contents, error) {
	if path == StdinPath {
		if r.stdin == nil {
			contents, err := readFrom(r.Stdin)
			if err != nil {
				return Contents{}, fmt.Errorf("reading stdin: %w", err)
			}
			r.stdin = &contents
		}
		return *r.stdin, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Contents{}, err
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	contents, err := readFrom(file)
	if err != nil {
		return Contents{}, fmt.Errorf("reading %s: %w", path, err)
	}
	logging.Debug("Read %s (%s)", path, humanize.Bytes(uint64(len(contents.Raw))))
	return contents, nil
}

func readFrom(reader io.Reader) (Contents, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return Contents{}, err
	}
	return Contents{Raw: raw, Binary: !utf8.Valid(raw)}, nil
}

// SplitLines splits text into lines without their terminators. A trailing "\r" is removed from
// every line and a final line terminator does not start another line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

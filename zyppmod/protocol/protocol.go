// Package protocol implements the line-oriented Key=Value exchange spoken
// between the configuration agent and this adapter on stdin and stdout.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Recognized field keys.
const (
	KeyName         = "Name"
	KeyVersion      = "Version"
	KeyArchitecture = "Architecture"
	KeyPackageType  = "PackageType"
	KeyErrorMessage = "ErrorMessage"
	KeyFile         = "File"
)

// Field is one Key=Value line.
type Field struct {
	Key   string
	Value string
}

// Reader consumes Key=Value lines from a stream. Blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next field, or io.EOF at end of input. A non-empty line
// without a key and "=" is malformed input.
func (r *Reader) Next() (Field, error) {
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 1 {
			return Field{}, fmt.Errorf("malformed input line %q", line)
		}
		return Field{Key: line[:idx], Value: line[idx+1:]}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Field{}, err
	}
	return Field{}, io.EOF
}

// Writer emits Key=Value lines.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) KeyValue(key, value string) {
	fmt.Fprintf(w.w, "%s=%s\n", key, value)
}

// Error emits a single ErrorMessage line. Multi-line diagnostics (zypper
// is fond of them) are flattened so they cannot break the line protocol.
func (w *Writer) Error(msg string) {
	w.KeyValue(KeyErrorMessage, Flatten(msg))
}

// Flatten collapses text to one line, joining non-empty lines with "; ".
func Flatten(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}

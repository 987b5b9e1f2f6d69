// Package errlog records per-file analyzer failures in an append-only text file.
package errlog

import (
	"fmt"
	"os"
	"strings"
)

const rule = "--------------------------------------------------------------------------------"

// Log appends failure blocks to a file. The file is opened and closed for
// every entry, so no handle is held between writes.
type Log struct {
	path string
}

// New returns a Log writing to path. An empty path disables logging.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file path.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes one block for a failure on filePath:
//
//	File: <path>
//	Error: <first line of err>
//	<full error text>
//	<rule>
func (l *Log) Append(filePath string, err error) error {
	if l == nil || l.path == "" || err == nil {
		return nil
	}

	detail := err.Error()
	header, _, _ := strings.Cut(detail, "\n")

	f, openErr := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if openErr != nil {
		return fmt.Errorf("open error log: %w", openErr)
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", filePath)
	fmt.Fprintf(&b, "Error: %s\n", header)
	b.WriteString(detail)
	if !strings.HasSuffix(detail, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(rule)
	b.WriteString("\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write error log: %w", err)
	}
	return nil
}

// Package compilelog splits a compiler's textual log into diagnostic records.
package compilelog

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// ErrUnrecoverable matches any *UnrecoverableError via errors.Is.
var ErrUnrecoverable = errors.New("unrecoverable compiler log format")

// UnrecoverableError reports a log line that could not be parsed while no
// record was open. Remainder is the untouched log from that line on.
type UnrecoverableError struct {
	Line      string
	Remainder string
}

func (e *UnrecoverableError) Error() string {
	return "Cannot parse error text: " + e.Line
}

func (e *UnrecoverableError) Is(target error) bool {
	return target == ErrUnrecoverable
}

// Record is one diagnostic from the log. Line is 0-based.
type Record struct {
	File     string
	Line     int
	Category string
	Message  string
	Raw      string
}

func (r Record) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", r.File, r.Line+1, r.Category, r.Message)
}

// Scanner reads records one at a time, in the style of bufio.Scanner.
// Continuation lines that follow a record are written to the console rather
// than merged into the record.
type Scanner struct {
	log     string
	pos     int
	pattern *Pattern
	console io.Writer

	open bool
	rec  Record
	err  error
}

// NewScanner creates a scanner over log. A nil pattern means DefaultPattern;
// a nil console discards forwarded text.
func NewScanner(log string, pattern *Pattern, console io.Writer) *Scanner {
	if pattern == nil {
		pattern = DefaultPattern
	}
	if console == nil {
		console = io.Discard
	}
	return &Scanner{log: log, pattern: pattern, console: console}
}

// Scan advances to the next record. It returns false at the end of the log
// or when parsing halts; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.pos < len(s.log) {
		start := s.pos
		line, next := nextLine(s.log, s.pos)
		s.pos = next

		m, ok := s.pattern.match(line)
		if !ok {
			if s.open {
				fmt.Fprintln(s.console, line)
				continue
			}
			remainder := s.log[start:]
			_, _ = io.WriteString(s.console, remainder)
			s.pos = len(s.log)
			s.err = &UnrecoverableError{Line: line, Remainder: remainder}
			return false
		}

		n, err := parseLine(m.line)
		if err != nil {
			s.err = fmt.Errorf("compiler log line %q: %w", line, err)
			return false
		}
		s.open = true
		s.rec = Record{File: m.file, Line: n - 1, Category: m.category, Message: m.message, Raw: line}
		return true
	}
	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the error that stopped scanning, if any.
func (s *Scanner) Err() error { return s.err }

// Drain forwards everything not yet consumed to the console.
func (s *Scanner) Drain() {
	if s.pos < len(s.log) {
		_, _ = io.WriteString(s.console, s.log[s.pos:])
		s.pos = len(s.log)
	}
}

// Parse collects every record of log.
func Parse(log string, pattern *Pattern, console io.Writer) ([]Record, error) {
	s := NewScanner(log, pattern, console)
	var out []Record
	for s.Scan() {
		out = append(out, s.Record())
	}
	return out, s.Err()
}

func nextLine(text string, pos int) (line string, next int) {
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		line, next = text[pos:], len(text)
	} else {
		line, next = text[pos:pos+end], pos+end+1
	}
	return strings.TrimSuffix(line, "\r"), next
}

func parseLine(s string) (int, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[int](u)
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// MessageReader yields chat messages one line at a time. Blank lines are
// skipped. A single goroutine owns the underlying reader, so a canceled
// read does not lose the next line.
type MessageReader struct {
	lines chan string
	done  chan struct{}
	err   error
	once  sync.Once
}

// NewMessageReader starts reading from r.
func NewMessageReader(r io.Reader) *MessageReader {
	if r == nil {
		panic("reader cannot be nil")
	}

	m := &MessageReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go m.run(r)
	return m
}

func (m *MessageReader) run(r io.Reader) {
	defer close(m.lines)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case m.lines <- line:
		case <-m.done:
			return
		}
	}
	m.err = scanner.Err()
}

// Next returns the next non-blank line. It returns io.EOF once input is
// exhausted and ErrInputCancelled if ctx ends first.
func (m *MessageReader) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line, ok := <-m.lines:
		if !ok {
			if m.err != nil {
				return "", m.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Close stops the reader goroutine after its current read returns.
func (m *MessageReader) Close() {
	m.once.Do(func() { close(m.done) })
}

// Package kio abstracts the byte sources and sinks of a build: regular files,
// or stdin/stdout when the caller passes "-". Every error a Stream returns
// names the source it came from, so a failed build always tells the operator
// which input to fix.
package kio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

type kind int

const (
	kindStdin kind = iota
	kindStdout
	kindFile
)

var errUnsupported = errors.New("operation not supported")

// Stream is a named byte source or sink.
type Stream struct {
	kind kind
	path string
}

// Input builds a readable stream; "-" maps to stdin.
func Input(path string) *Stream {
	if path == "-" {
		return &Stream{kind: kindStdin}
	}
	return &Stream{kind: kindFile, path: path}
}

// Output builds a writable stream; "-" maps to stdout.
func Output(path string) *Stream {
	if path == "-" {
		return &Stream{kind: kindStdout}
	}
	return &Stream{kind: kindFile, path: path}
}

// ReadAll eagerly reads the whole stream. Partial reads are never returned.
func (s *Stream) ReadAll() ([]byte, error) {
	var data []byte
	var err error

	switch s.kind {
	case kindStdin:
		data, err = io.ReadAll(os.Stdin)
	case kindStdout:
		err = errUnsupported
	case kindFile:
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, s)
	}

	return data, nil
}

// Write replaces the stream's contents with data in a single attempt.
func (s *Stream) Write(data []byte) error {
	var err error

	switch s.kind {
	case kindStdin:
		err = errUnsupported
	case kindStdout:
		_, err = os.Stdout.Write(data)
	case kindFile:
		err = os.WriteFile(s.path, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("%w (%s)", err, s)
	}

	return nil
}

func (s *Stream) String() string {
	switch s.kind {
	case kindStdin:
		return "stdin"
	case kindStdout:
		return "stdout"
	default:
		return s.path
	}
}

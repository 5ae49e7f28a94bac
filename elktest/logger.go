// Copyright © 2018 The ELPS authors

package elktest

import (
	"bytes"
	"io"
	"testing"
)

// Logger is an io.Writer that forwards complete lines to a test log.
type Logger struct {
	t   testing.TB
	buf []byte
}

var _ io.Writer = (*Logger)(nil)

func NewLogger(t testing.TB) *Logger {
	return &Logger{
		t: t,
	}
}

func (log *Logger) Write(b []byte) (int, error) {
	log.buf = append(log.buf, b...)
	for {
		i := bytes.IndexByte(log.buf, '\n')
		if i < 0 {
			return len(b), nil
		}
		log.t.Log(string(log.buf[:i])) // slice does not include \n
		log.buf = log.buf[i+1:]
	}
}

func (log *Logger) Flush() {
	if len(log.buf) == 0 {
		return
	}
	log.t.Log(string(log.buf))
	log.buf = nil
}

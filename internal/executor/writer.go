package executor

import (
	"io"
	"sync"
)

type streamType string

const (
	stdoutStream streamType = "stdout"
	stderrStream streamType = "stderr"
)

// IOWriters pairs the stdout and stderr destinations of a launcher.
type IOWriters struct {
	Out io.Writer
	Err io.Writer
}

type streamWriter struct {
	stream  streamType
	writers []*IOWriters
}

// Write copies p to the Out or Err stream of every target. A target that
// fails does not stop the others; the first error is returned, and
// io.ErrShortWrite when any target wrote only part of p.
func (w *streamWriter) Write(p []byte) (int, error) {
	var (
		minWritten = len(p)
		wrote      bool
		anyShort   bool
		firstErr   error
	)

	for _, wtr := range w.writers {
		var target io.Writer
		switch w.stream {
		case stdoutStream:
			target = wtr.Out
		case stderrStream:
			target = wtr.Err
		}
		if target == nil {
			continue
		}

		nn, err := target.Write(p)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if nn > 0 {
			wrote = true
			if nn < len(p) {
				anyShort = true
			}
			if nn < minWritten {
				minWritten = nn
			}
		}
	}

	if !wrote && firstErr != nil {
		return 0, firstErr
	}
	if anyShort {
		return minWritten, io.ErrShortWrite
	}
	return len(p), firstErr
}

// newStreamWriter returns an io.Writer that fans out to one stream of each
// IOWriters.
func newStreamWriter(stream streamType, writers ...*IOWriters) io.Writer {
	return &streamWriter{stream: stream, writers: writers}
}

// lockedWriter serialises writes from the stdout and stderr copy goroutines
// when both end up on the same terminal writer.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// syncWriters guards a terminal pair with a single lock.
func syncWriters(t *IOWriters) *IOWriters {
	mu := &sync.Mutex{}
	return &IOWriters{
		Out: &lockedWriter{mu: mu, w: t.Out},
		Err: &lockedWriter{mu: mu, w: t.Err},
	}
}

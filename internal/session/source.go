package session

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
)

// Source yields input lines. ReadLine returns io.EOF once no more lines
// will arrive.
type Source interface {
	ReadLine(ctx context.Context) (string, error)
}

// Sink receives the machine's replies, one message per call.
type Sink interface {
	WriteMessage(msg string) error
}

// MaxLineLength bounds one input line. Longer lines are not passed through:
// the source yields their first few bytes followed by "..." instead, which
// no state accepts, and resumes after the next newline.
const MaxLineLength = 64 * 1024

const overlongPrefix = 32

// ScannerSource reads newline-terminated lines from an io.Reader.
// The blocking read runs on its own goroutine so ReadLine returns as soon as
// ctx is done. A read abandoned that way completes in the background and its
// line is returned by the next call.
type ScannerSource struct {
	sc      *bufio.Scanner
	pending chan scanResult
}

type scanResult struct {
	line string
	err  error
}

// NewScannerSource wraps r.
func NewScannerSource(r io.Reader) *ScannerSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), MaxLineLength)
	sc.Split(boundedLines(MaxLineLength))
	return &ScannerSource{sc: sc}
}

func (s *ScannerSource) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.pending == nil {
		s.pending = make(chan scanResult, 1)
		go s.scan(s.pending)
	}

	select {
	case res := <-s.pending:
		s.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *ScannerSource) scan(out chan<- scanResult) {
	if s.sc.Scan() {
		out <- scanResult{line: s.sc.Text()}
		return
	}
	err := s.sc.Err()
	if err == nil {
		err = io.EOF
	}
	out <- scanResult{err: err}
}

// boundedLines is bufio.ScanLines that replaces lines of limit bytes or more
// with a short marker token instead of failing with bufio.ErrTooLong.
func boundedLines(limit int) bufio.SplitFunc {
	var skipped []byte
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if skipped != nil {
			token := append(skipped, "..."...)
			if i := bytes.IndexByte(data, '\n'); i >= 0 {
				skipped = nil
				return i + 1, token, nil
			}
			if atEOF {
				skipped = nil
				return len(data), token, nil
			}
			return len(data), nil, nil
		}

		if bytes.IndexByte(data, '\n') < 0 && len(data) >= limit {
			skipped = append([]byte{}, data[:overlongPrefix]...)
			return len(data), nil, nil
		}
		return bufio.ScanLines(data, atEOF)
	}
}

// ChannelSource feeds lines from a Go channel. Closing the channel ends
// the input.
type ChannelSource struct {
	ch <-chan string
}

// NewChannelSource creates a ChannelSource reading from ch.
func NewChannelSource(ch <-chan string) *ChannelSource {
	return &ChannelSource{ch: ch}
}

func (s *ChannelSource) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case line, ok := <-s.ch:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Lines returns a closed, buffered channel holding lines, for scripted
// sessions.
func Lines(lines ...string) <-chan string {
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	close(ch)
	return ch
}

// WriterSink writes each message followed by a newline.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteMessage(msg string) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, err := io.WriteString(s.w, msg)
	return err
}

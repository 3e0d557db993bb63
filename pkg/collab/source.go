package collab

import (
	"bufio"
	"context"
	"io"

	"github.com/flowgate/flowgate/internal/model"
)

// NDJSONSource reads newline-delimited JSON events from an io.Reader,
// one Document per line. It is the stand-in for the real event-source
// adapter (spec.md §1's out-of-scope "event-source adapter that
// produces events"), grounded on the teacher's line-oriented Source
// implementations.
type NDJSONSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

// NewNDJSONSource wraps r. If r also implements io.Closer, Close
// releases it.
func NewNDJSONSource(r io.Reader) *NDJSONSource {
	s := &NDJSONSource{scanner: bufio.NewScanner(r)}
	s.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Next implements interfaces.EventSource.
func (s *NDJSONSource) Next(ctx context.Context) (*model.Document, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		return model.Parse(line)
	}
}

// Close implements interfaces.EventSource.
func (s *NDJSONSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

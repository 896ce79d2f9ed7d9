package sink

import (
	"context"
	"io"
	"sync"
)

// WriterSink writes one encoded frame per line. Binary payloads are written
// without a separator.
type WriterSink struct {
	mu    sync.Mutex
	w     io.Writer
	codec Codec
}

func NewWriterSink(w io.Writer, codec Codec) *WriterSink {
	if codec == "" {
		codec = CodecJSON
	}
	return &WriterSink{w: w, codec: codec}
}

func (s *WriterSink) Publish(ctx context.Context, f *Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.codec.Encode(f)
	if err != nil {
		return err
	}
	if s.codec == CodecJSON {
		data = append(data, '\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(data)
	return err
}

// Close closes the writer if it is an io.Closer.
func (s *WriterSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

package api

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

// SSEStreamWriter emits a generation as server-sent events:
// generation.created, one generation.token per token, then
// generation.completed or generation.failed.
type SSEStreamWriter struct {
	w       io.Writer
	flusher func()
	seq     int
}

type streamEvent struct {
	Type           string            `json:"type"`
	Token          string            `json:"token,omitempty"`
	Index          *int              `json:"index,omitempty"`
	Generation     *GenerateResponse `json:"generation,omitempty"`
	Error          *ResponseError    `json:"error,omitempty"`
	SequenceNumber int               `json:"sequence_number"`
}

func NewSSEStreamWriter(c *echo.Context) (*SSEStreamWriter, error) {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")

	flusher, ok := res.(interface{ Flush() })
	if !ok {
		return nil, fmt.Errorf("streaming unsupported")
	}
	return &SSEStreamWriter{
		w:       res,
		flusher: flusher.Flush,
		seq:     1,
	}, nil
}

func (s *SSEStreamWriter) Begin(gen GenerateResponse) error {
	return s.emit(streamEvent{Type: "generation.created", Generation: &gen})
}

func (s *SSEStreamWriter) EmitToken(index int, tok string) error {
	return s.emit(streamEvent{Type: "generation.token", Token: tok, Index: &index})
}

func (s *SSEStreamWriter) Complete(gen GenerateResponse) error {
	return s.emit(streamEvent{Type: "generation.completed", Generation: &gen})
}

// Failed ends the stream with the error type and code writeModelError would
// have answered with.
func (s *SSEStreamWriter) Failed(err error) error {
	class := classifyError(err)
	return s.emit(streamEvent{
		Type: "generation.failed",
		Error: &ResponseError{
			Message: err.Error(),
			Type:    class.errType,
			Code:    class.code,
			Param:   class.param,
		},
	})
}

func (s *SSEStreamWriter) emit(event streamEvent) error {
	event.SequenceNumber = s.seq
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", b); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher()
	}
	s.seq++
	return nil
}

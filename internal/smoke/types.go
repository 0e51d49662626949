package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
)

// Payload is the JSON body sent to the generate endpoint.
type Payload struct {
	Prompt string `json:"prompt"`
}

// Request is built once per run and never modified after NewRequest.
type Request struct {
	URL     string
	Payload Payload
	ID      string
}

func NewRequest(url, prompt string) *Request {
	return &Request{
		URL:     url,
		Payload: Payload{Prompt: prompt},
		ID:      uuid.NewString(),
	}
}

// Encode renders the body as {"prompt": "..."}, with a space after the colon,
// which is the exact form the generate service's reference client sends.
func (r *Request) Encode() ([]byte, error) {
	prompt, err := json.Marshal(r.Payload.Prompt)
	if err != nil {
		return nil, fmt.Errorf("encode prompt: %w", err)
	}
	body := make([]byte, 0, len(prompt)+len(`{"prompt": }`))
	body = append(body, `{"prompt": `...)
	body = append(body, prompt...)
	body = append(body, '}')
	return body, nil
}

// Response is the raw result of a completed exchange. Any status code counts.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
}

// TransportError is any failure to send the request or receive the response:
// refused connections, DNS failures, timeouts and truncated bodies alike.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request gave up waiting.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// Outcome holds exactly one of Response or Err.
type Outcome struct {
	Response *Response
	Err      error
}

package llm

import (
	"context"
	"fmt"
	"io"
	"time"
)

// LoggingProvider is a decorator that writes a one-line record of every
// LLM request to w. Enabled with STUDYGLASS_LLM_DEBUG; logging is
// best-effort and never fails the wrapped request.
type LoggingProvider struct {
	inner Provider
	w     io.Writer
}

// WithLogging wraps a Provider with request logging to w.
func WithLogging(p Provider, w io.Writer) Provider {
	return &LoggingProvider{inner: p, w: w}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start).Round(time.Millisecond)
	if err != nil {
		fmt.Fprintf(l.w, "llm %s model=%s latency=%s error=%v\n",
			purpose, l.inner.ModelID(), latency, err)
		return resp, err
	}

	fmt.Fprintf(l.w, "llm %s model=%s latency=%s in=%d out=%d stop=%s\n",
		purpose, resp.Model, latency,
		resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.StopReason)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

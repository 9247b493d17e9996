/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package transport

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// rateLimitedReader shapes reads to the limiter rate, blocking
// until enough tokens are available for every chunk read.
type rateLimitedReader struct {
	r   io.Reader
	lim *rate.Limiter
}

func newRateLimitedReader(r io.Reader, cfg RateLimitConfig) io.Reader {
	if cfg.Rate <= 0 {
		return r
	}
	return &rateLimitedReader{r: r, lim: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)}
}

func (lr *rateLimitedReader) Read(p []byte) (int, error) {
	if b := lr.lim.Burst(); len(p) > b {
		p = p[:b]
	}
	n, err := lr.r.Read(p)
	if n > 0 {
		if wErr := lr.lim.WaitN(context.Background(), n); wErr != nil {
			return n, wErr
		}
	}
	return n, err
}

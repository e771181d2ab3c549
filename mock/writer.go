package mock

import (
	"context"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

var _ gmp.EnvelopeWriter = (*EnvelopeWriter)(nil)

// EnvelopeWriter is a mock implementation of gmp.EnvelopeWriter.
type EnvelopeWriter struct {
	WriteEnvelopeFn func(ctx context.Context, env *gmp.Envelope) error
}

func (w *EnvelopeWriter) WriteEnvelope(ctx context.Context, env *gmp.Envelope) error {
	return w.WriteEnvelopeFn(ctx, env)
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

// FanOut writes each batch to every loader in order and stops at the first
// failure. Loaders must tolerate replays: a failed batch is retried against
// all of them.
type FanOut []BatchLoader

func (f FanOut) LoadBatch(ctx context.Context, events []domain.InvestigationEvent) error {
	for i, l := range f {
		if err := l.LoadBatch(ctx, events); err != nil {
			return fmt.Errorf("loader %d: %w", i, err)
		}
	}
	return nil
}

package outbox

import (
	"context"
	"fmt"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/repo"
)

// Write encodes events and appends them to store. Pass the repo of the
// transaction that persists the aggregate so both commit together.
func Write(ctx context.Context, store repo.OutboxRepo, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]domain.OutboxMessage, 0, len(events))
	for _, e := range events {
		m, err := Encode(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, m)
	}
	if err := store.Append(ctx, msgs...); err != nil {
		return fmt.Errorf("outbox.Write: %w", err)
	}
	return nil
}

// Package outbox moves domain events from the transaction that raised them
// to the handlers that react to them. Events are encoded into
// outbox_messages rows by Write and delivered at least once by Processor.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/article-catalog/internal/domain"
)

var (
	// ErrUnknownEventType is returned by Decode for a kind tag with no decoder.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrMalformedPayload is returned by Decode when the payload does not
	// unmarshal into the event type its kind tag names.
	ErrMalformedPayload = errors.New("malformed event payload")
)

// Encode serializes e into a new unprocessed outbox message.
func Encode(e domain.Event) (domain.OutboxMessage, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("outbox.Encode: %s: %w", e.Kind(), err)
	}
	return domain.NewOutboxMessage(string(e.Kind()), data, e.OccurredOn()), nil
}

// Decode turns a stored message back into its concrete event.
// Both returned errors are permanent: retrying the same row cannot succeed.
func Decode(m domain.OutboxMessage) (domain.Event, error) {
	switch domain.EventKind(m.EventType) {
	case domain.KindArticleCreated:
		return decodeAs[domain.ArticleCreated](m)
	case domain.KindArticleTagsChanged:
		return decodeAs[domain.ArticleTagsChanged](m)
	case domain.KindArticleDeleted:
		return decodeAs[domain.ArticleDeleted](m)
	default:
		return nil, fmt.Errorf("outbox.Decode: %q: %w", m.EventType, ErrUnknownEventType)
	}
}

func decodeAs[E domain.Event](m domain.OutboxMessage) (domain.Event, error) {
	var e E
	if err := json.Unmarshal(m.EventData, &e); err != nil {
		return nil, fmt.Errorf("outbox.Decode: %s: %w: %v", m.EventType, ErrMalformedPayload, err)
	}
	return e, nil
}

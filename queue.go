package mailward

import "context"

// QueueService consumes newsletter dispatch requests from a message broker.
type QueueService interface {
	Consume(ctx context.Context, topic string) (<-chan []byte, error)
	Close() error
}

package analysis

import "context"

// Stream yields text fragments until io.EOF.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Streamer opens a streaming text generation.
type Streamer interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}

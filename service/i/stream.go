package i

import "context"

// StepStream stores the steps of a broadcast run so viewers can replay them at any time.
type StepStream interface {
	// Append adds payload to the end of stream.
	Append(ctx context.Context, stream string, payload []byte) error

	// Range returns every payload of stream in append order. A missing stream is empty.
	Range(ctx context.Context, stream string) ([][]byte, error)
}

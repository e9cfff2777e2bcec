package ports

import "context"

// Notifier delivers user-facing error messages. Delivery is fire-and-forget.
type Notifier interface {
	Error(ctx context.Context, message string)
}

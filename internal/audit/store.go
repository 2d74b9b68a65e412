package audit

import "context"

// Store persists provider call records.
type Store interface {
	Record(ctx context.Context, call ProviderCall) error
	ListRecent(ctx context.Context, limit int) ([]ProviderCall, error)
}

// DefaultListLimit bounds ListRecent when the caller passes a non-positive limit.
const DefaultListLimit = 50

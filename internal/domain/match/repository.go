package match

import "context"

// Repository exposes the loaded, reconciled match set.
type Repository interface {
	ListAll(ctx context.Context) ([]Match, error)
}

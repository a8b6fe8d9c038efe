package profile

import "context"

// Repository is the read-only profile lookup contract. Implementations never
// hand out references to their internal state.
type Repository interface {
	Get(ctx context.Context, id string) (UserProfile, bool, error)
	List(ctx context.Context) ([]string, error)
}

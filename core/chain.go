package core

import "context"

// Clock is the logical block clock deadlines are compared against. Heights
// are monotonically non-decreasing.
type Clock interface {
	Height(ctx context.Context) (uint64, error)
}

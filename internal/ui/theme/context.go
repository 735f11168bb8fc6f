package theme

import (
	"context"
	"errors"
)

// ErrNoManager is returned when theme state is read outside a scope that
// carries a Manager.
var ErrNoManager = errors.New("theme: no manager in context")

type managerKey struct{}

// WithManager returns a context carrying m for the UI subtree below it.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, m)
}

// FromContext returns the Manager of the enclosing scope.
func FromContext(ctx context.Context) (*Manager, error) {
	m, ok := ctx.Value(managerKey{}).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoManager
	}
	return m, nil
}

// MustFromContext is FromContext for call sites where a missing manager is
// an integration bug. It panics.
func MustFromContext(ctx context.Context) *Manager {
	m, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return m
}

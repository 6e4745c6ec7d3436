package provider

import (
	"context"
	"errors"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// ErrUnexpectedStatus is wrapped by sources that got a non-success response.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// MessageSource returns the full, ordered message sequence in one call.
type MessageSource interface {
	Fetch(ctx context.Context) ([]domain.Message, error)
}

// SourceFunc adapts a plain function to MessageSource.
type SourceFunc func(ctx context.Context) ([]domain.Message, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]domain.Message, error) {
	return f(ctx)
}

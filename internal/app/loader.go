package app

import (
	"context"
	"log"
	"time"

	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/provider"
	"github.com/lu-zhengda/mailpane/internal/store"
)

// Loader fills the in-memory message store from a message source.
type Loader struct {
	store  *store.Messages
	source provider.MessageSource
}

// NewLoader creates a Loader that writes what src returns into s.
func NewLoader(s *store.Messages, src provider.MessageSource) *Loader {
	return &Loader{store: s, source: src}
}

// Result describes one load attempt.
type Result struct {
	Messages []domain.Message
	Err      error
}

// Load fetches once and replaces the store wholesale. On failure the error
// is logged and the store is left as it was (empty on first load). A
// cancelled ctx never writes to the store.
func (l *Loader) Load(ctx context.Context) Result {
	start := time.Now()
	msgs, err := l.source.Fetch(ctx)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("[fetch] failed to load messages after %s: %v", elapsed.Round(time.Millisecond), err)
		return Result{Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Printf("[fetch] discarding %d messages: %v", len(msgs), ctxErr)
		return Result{Err: ctxErr}
	}

	l.store.Replace(msgs)
	log.Printf("[fetch] loaded %d messages in %s", len(msgs), elapsed.Round(time.Millisecond))
	return Result{Messages: l.store.All()}
}

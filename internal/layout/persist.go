package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lu-zhengda/mailpane/internal/store"
)

// Preference keys.
const (
	KeySizes     = "layout"
	KeyCollapsed = "collapsed"
)

// Persister reads and writes the layout through a key-value store.
type Persister struct {
	kv store.KV
}

// New returns a Persister backed by kv.
func New(kv store.KV) *Persister {
	return &Persister{kv: kv}
}

// Load returns the stored layout. Each key that is missing or unreadable
// falls back to its default on its own; failures are logged, never returned.
func (p *Persister) Load(ctx context.Context) Layout {
	l := Default()

	if raw, ok := p.read(ctx, KeySizes); ok {
		sizes, err := parseSizes(raw)
		if err != nil {
			log.Printf("[layout] ignoring stored %s %q: %v", KeySizes, raw, err)
		} else {
			l.Sizes = sizes
		}
	}

	if raw, ok := p.read(ctx, KeyCollapsed); ok {
		var collapsed bool
		if err := json.Unmarshal([]byte(raw), &collapsed); err != nil {
			log.Printf("[layout] ignoring stored %s %q: %v", KeyCollapsed, raw, err)
		} else {
			l.Collapsed = collapsed
		}
	}

	return l
}

// SaveSizes writes the pane sizes.
func (p *Persister) SaveSizes(ctx context.Context, sizes [3]float64) error {
	data, err := json.Marshal(sizes)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := p.kv.Set(ctx, KeySizes, string(data)); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	return nil
}

// SaveCollapsed writes the collapsed flag.
func (p *Persister) SaveCollapsed(ctx context.Context, collapsed bool) error {
	data, err := json.Marshal(collapsed)
	if err != nil {
		return fmt.Errorf("failed to marshal collapsed flag: %w", err)
	}
	if err := p.kv.Set(ctx, KeyCollapsed, string(data)); err != nil {
		return fmt.Errorf("failed to save collapsed flag: %w", err)
	}
	return nil
}

// Reset removes both keys so the next Load returns the defaults.
func (p *Persister) Reset(ctx context.Context) error {
	for _, key := range []string{KeySizes, KeyCollapsed} {
		if err := p.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to reset layout: %w", err)
		}
	}
	return nil
}

// read returns the raw value for key. A missing key is reported quietly,
// any other store error is logged.
func (p *Persister) read(ctx context.Context, key string) (string, bool) {
	raw, err := p.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", false
	}
	if err != nil {
		log.Printf("[layout] failed to read %s: %v", key, err)
		return "", false
	}
	if raw == "" {
		log.Printf("[layout] stored %s is empty", key)
		return "", false
	}
	return raw, true
}

func parseSizes(raw string) ([3]float64, error) {
	var sizes []float64
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return [3]float64{}, fmt.Errorf("failed to parse sizes: %w", err)
	}
	if len(sizes) != 3 {
		return [3]float64{}, fmt.Errorf("expected 3 sizes, got %d", len(sizes))
	}
	out := [3]float64{sizes[0], sizes[1], sizes[2]}
	if !validSizes(out) {
		return [3]float64{}, fmt.Errorf("sizes must be positive: %v", sizes)
	}
	return out, nil
}

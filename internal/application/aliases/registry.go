// Package aliases maps technical token names and values to display labels.
// Both tables merge built-in defaults with entries persisted in a key-value
// store, and every mutation rewrites the persisted entry wholesale.
package aliases

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// Persisted store keys.
const (
	NamesKey  = "accordion_token_aliases"
	ValuesKey = "accordion_token_value_aliases"
)

// ErrResetDeclined is returned when the caller did not confirm a reset.
var ErrResetDeclined = errors.New("alias reset declined")

// Confirmation asks the caller to approve a destructive action.
type Confirmation func(ctx context.Context, prompt string) bool

// table is one persisted label map.
type table struct {
	key       string
	defaults  map[string]string
	store     ports.KeyValueStore
	publisher ports.EventPublisher
	logger    ports.Logger

	mu      sync.RWMutex
	entries map[string]string
}

func newTable(ctx context.Context, key string, defaults map[string]string, store ports.KeyValueStore, publisher ports.EventPublisher, logger ports.Logger) *table {
	t := &table{
		key:       key,
		defaults:  defaults,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
	t.entries = t.load(ctx)
	return t
}

// load merges the defaults with the persisted entry. A missing or corrupt
// entry is logged and treated as empty.
func (t *table) load(ctx context.Context) map[string]string {
	entries := copyMap(t.defaults)
	if t.store == nil {
		return entries
	}

	raw, err := t.store.Get(ctx, t.key)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) && t.logger != nil {
			t.logger.Warn(ctx, "failed to read aliases", "key", t.key, "error", err)
		}
		return entries
	}

	var stored map[string]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if t.logger != nil {
			t.logger.Warn(ctx, "ignoring corrupt aliases", "key", t.key, "error", err)
		}
		return entries
	}
	for k, v := range stored {
		entries[k] = v
	}
	if t.logger != nil {
		t.logger.Debug(ctx, "aliases loaded", "key", t.key, "stored", len(stored), "total", len(entries))
	}
	return entries
}

func (t *table) get(key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	label, ok := t.entries[key]
	return label, ok
}

func (t *table) all() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyMap(t.entries)
}

// set stores the label and persists the whole table. The in-memory table
// keeps the new label even when persisting fails.
func (t *table) set(ctx context.Context, key, label string) error {
	t.mu.Lock()
	t.entries[key] = label
	err := t.persistLocked(ctx)
	t.mu.Unlock()

	t.publish(ctx, ports.EventAliasChanged, map[string]interface{}{
		"table": t.key,
		"key":   key,
		"label": label,
	})
	return err
}

// reset rebuilds the table from defaults off to the side and swaps it in.
func (t *table) reset(ctx context.Context) error {
	next := copyMap(t.defaults)

	t.mu.Lock()
	removed := 0
	for k := range t.entries {
		if _, ok := next[k]; !ok {
			removed++
		}
	}
	t.entries = next
	err := t.persistLocked(ctx)
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Info(ctx, "aliases reset", "key", t.key, "removed", removed)
	}
	t.publish(ctx, ports.EventAliasesReset, map[string]interface{}{
		"table":   t.key,
		"removed": removed,
	})
	return err
}

func (t *table) persistLocked(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	data, err := json.Marshal(t.entries)
	if err != nil {
		return err
	}
	if err := t.store.Set(ctx, t.key, string(data)); err != nil {
		if t.logger != nil {
			t.logger.Error(ctx, "failed to save aliases", "key", t.key, "error", err)
		}
		return err
	}
	return nil
}

func (t *table) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.Publish(ctx, ports.Event{Type: eventType, Data: payload}); err != nil && t.logger != nil {
		t.logger.Warn(ctx, "failed to publish domain event", "event_type", eventType, "error", err)
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func confirm(ctx context.Context, c Confirmation, prompt string) error {
	if c == nil || !c(ctx, prompt) {
		return ErrResetDeclined
	}
	return nil
}

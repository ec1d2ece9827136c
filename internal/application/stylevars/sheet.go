// Package stylevars keeps the global style-variable scope in sync with the
// token service. Consumers outside the widget tree read or watch it instead
// of reaching into the service.
package stylevars

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// Watcher receives the full variable map after each change.
type Watcher func(vars map[string]string)

// Sheet is the current set of --name: value variables.
type Sheet struct {
	mu       sync.RWMutex
	vars     map[string]string
	watchers map[int]Watcher
	nextID   int
	sub      ports.Subscription
}

// NewSheet subscribes a sheet to style variable events.
func NewSheet(publisher ports.EventPublisher) (*Sheet, error) {
	s := &Sheet{
		vars:     map[string]string{},
		watchers: map[int]Watcher{},
	}
	sub, err := publisher.Subscribe(ports.EventStyleVariables, s.handle)
	if err != nil {
		return nil, fmt.Errorf("subscribe to style variables: %w", err)
	}
	s.sub = sub
	return s, nil
}

func (s *Sheet) handle(_ context.Context, event ports.DomainEvent) error {
	vars, ok := event.Payload().(map[string]string)
	if !ok {
		return fmt.Errorf("unexpected style variables payload %T", event.Payload())
	}
	next := make(map[string]string, len(vars))
	for k, v := range vars {
		next[k] = v
	}

	s.mu.Lock()
	s.vars = next
	watchers := make([]Watcher, 0, len(s.watchers))
	ids := make([]int, 0, len(s.watchers))
	for id := range s.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		watchers = append(watchers, s.watchers[id])
	}
	s.mu.Unlock()

	for _, w := range watchers {
		w(s.Variables())
	}
	return nil
}

// Lookup returns the value of a variable such as --accordion-arrow-mass.
func (s *Sheet) Lookup(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Variables returns a copy of every variable.
func (s *Sheet) Variables() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// Render prints the sheet as a :root block with variables sorted by name.
func (s *Sheet) Render() string {
	vars := s.Variables()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, vars[name])
	}
	b.WriteString("}\n")
	return b.String()
}

// Watch registers w and returns a func that removes it.
func (s *Sheet) Watch(w Watcher) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = w
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// Close detaches the sheet from the publisher.
func (s *Sheet) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
}

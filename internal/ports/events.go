package ports

import "context"

const (
	// EventTokensResolved is emitted once the initial resolution pass finishes.
	EventTokensResolved = "tokens.resolved"
	// EventTokensChanged is emitted after every change to the token mapping.
	EventTokensChanged = "tokens.changed"
	// EventPresetApplied is emitted when a spring preset is applied to a target.
	EventPresetApplied = "preset.applied"
	// EventStyleVariables carries the global style variables after a change.
	EventStyleVariables = "style.variables"
	// EventAliasChanged is emitted after a name or value alias is set.
	EventAliasChanged = "alias.changed"
	// EventAliasesReset is emitted after an alias table is restored to defaults.
	EventAliasesReset = "aliases.reset"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run, so every consumer has
// observed a token change before the call that caused it returns.
// Implementations must be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures should be surfaced via returned errors so publishers can
// log diagnostics and continue delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}

// Event is a plain DomainEvent implementation.
type Event struct {
	Type string
	Data interface{}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Data }

// Package events defines the integration event records published to the
// message broker and the topic names they go to. Events are written to the
// transactional outbox in the same database transaction as the state change
// and dispatched asynchronously, so delivery is at-least-once and consumers
// must deduplicate by event ID.
package events

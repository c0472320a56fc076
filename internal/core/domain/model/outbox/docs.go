// Package outbox contains the transactional outbox message: integration
// events persisted alongside the state change that produced them and
// published asynchronously by the dispatch job.
package outbox

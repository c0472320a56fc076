// Package delivery contains the DeliveryRequest aggregate and its lifecycle
// state machine. A delivery is posted by a client in Available status,
// accepted by a driver (InRoute), and settled by completion or cancellation.
// The aggregate enforces the transition graph and the driver-assignment
// invariant; money movement and event emission are orchestrated by the
// command handlers in the application layer.
package delivery

// Package services holds domain services that span aggregates. The access
// policy is a single table mapping each lifecycle operation to the role that
// may perform it and whether admin approval is required, so authorization
// checks read identically in every command handler.
package services

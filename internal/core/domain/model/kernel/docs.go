// Package kernel contains shared value objects used by every aggregate in the
// domain model. It currently holds the UUID value object; domain packages
// depend on kernel, never the other way around.
package kernel

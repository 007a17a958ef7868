// Package system abstracts the host operating system behind a capability
// interface so provisioning stages can be unit-tested against a fake
// machine instead of a real one.
package system

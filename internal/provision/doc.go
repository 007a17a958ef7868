// Package provision runs ordered provisioning stages against a stage
// ledger so interrupted runs can be resumed.
//
// Stage implementations live in the stages subpackage. This root package
// contains the Stage interface, the shared Context and State types, the
// ledger-gated runner, and the Observer used for progress reporting.
package provision

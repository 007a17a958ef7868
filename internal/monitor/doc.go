// Package monitor implements the periodic health checks: resource usage
// against configured thresholds, SSH security posture, and the once-a-day
// status report. Collectors gather raw numbers; evaluation is pure and
// produces at most one message per check, which the caller hands to the
// notifier.
package monitor

// Package config defines the provost.yaml schema, its defaults and
// validation, and the environment-variable knobs for retry and timeout
// tuning.
package config

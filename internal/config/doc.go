// Package config handles YAML scenario loading with environment variable substitution.
//
// A scenario file describes the firms of a market, the solver settings,
// optional result storage and logging. Files support ${VAR} syntax for
// environment variable interpolation.
package config

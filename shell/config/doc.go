// Package config loads runtime settings from the environment and builds database connections.
//
// Settings are read from process environment variables, optionally seeded from a .env file.
// The Postgres factories configure connection pools for the three supported client libraries.
package config

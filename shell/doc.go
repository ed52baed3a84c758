// Package shell holds the infrastructure shared by the command and query slices.
//
// It maps domain events to and from the journal's storable form, queues recorded events in
// an Outbox so that lending never waits on I/O, retries journal appends with exponential
// backoff, and rebuilds the in-memory inventory from the journal at startup.
package shell

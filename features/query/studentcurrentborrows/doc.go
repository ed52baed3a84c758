// Package studentcurrentborrows implements the Student Current Borrows query use case.
package studentcurrentborrows

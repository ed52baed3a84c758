// Package borrowedbooks implements the Borrowed Books query use case.
package borrowedbooks

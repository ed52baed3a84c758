// Package bookhistory implements the Book History query use case.
package bookhistory

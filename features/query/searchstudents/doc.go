// Package searchstudents implements the Search Students query use case.
package searchstudents

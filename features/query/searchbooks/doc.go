// Package searchbooks implements the Search Books query use case.
//
// Matching is a case-insensitive substring match over title, author and ISBN.
// A blank search term returns the whole catalog.
package searchbooks

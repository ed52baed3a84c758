package searchbooks

import (
	"strings"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectMatchingBooks filters the catalog by the search term.
//
// Query Logic:
//
//	GIVEN: Book snapshots and a search term
//	WHEN: SearchBooks query is executed
//	THEN: books whose title, author or ISBN contains the term, ignoring case
//	EDGE: a blank term matches every book
func ProjectMatchingBooks(books []core.Book, query Query) Books {
	term := strings.ToLower(strings.TrimSpace(query.Term))
	result := Books{Books: make([]core.Book, 0, len(books))}

	for _, book := range books {
		if term == "" || matches(book, term) {
			result.Books = append(result.Books, book)
		}
	}

	result.Count = len(result.Books)

	return result
}

func matches(book core.Book, term string) bool {
	for _, field := range []string{book.Title, book.Author, book.ISBN} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

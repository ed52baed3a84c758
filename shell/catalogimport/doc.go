// Package catalogimport loads books from CSV files into the inventory through the add book command.
//
// Rows have the columns id, title, author, isbn, copies. A leading header row starting with "id"
// is skipped. A bad row is counted and reported but does not stop the import.
package catalogimport

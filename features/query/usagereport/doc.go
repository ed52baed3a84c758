// Package usagereport implements the Usage Report query use case.
//
// The report counts every borrow ever made, active or returned, grouped by the batch
// code of the borrowing student. Within a batch the most borrowed titles are ranked.
//
// The inventory is read books first, then history. A record returned between the two
// reads shows up in both and is counted once; a record closed before the history read
// is never missed.
package usagereport

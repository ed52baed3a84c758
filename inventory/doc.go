// Package inventory holds the books and students of the library in memory.
//
// Reads never take a lock: the catalog and every book and student are immutable
// snapshots published through atomic pointers. Lending and returning run inside
// Transact, which serializes work per book (and per student) so that the copy
// counters and the active borrow records always change together. Adding books or
// students takes a separate store-wide lock.
package inventory

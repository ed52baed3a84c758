package addbook

var BookAddedFrom = bookAddedFrom

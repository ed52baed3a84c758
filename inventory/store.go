package inventory

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	logMsgBookAdded        = "inventory: book added"
	logMsgStudentEnrolled  = "inventory: student enrolled"
	logMsgOverRelease      = "inventory: copy released beyond total copies"
	logMsgUnbalancedCommit = "inventory: transaction left book unbalanced, discarded"
	logAttrBookID          = "book_id"
	logAttrStudentID       = "student_id"
	logAttrTotalCopies     = "total_copies"
	logAttrAvailable       = "available_copies"
	logAttrActiveRecords   = "active_records"
)

// Logger is the logging surface the store needs; *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Store is the in-memory inventory. The zero value is not usable, use NewStore.
type Store struct {
	structural sync.Mutex // guards catalog replacement
	catalog    atomic.Pointer[catalog]
	history    historyLog
	logger     Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for the Store.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

type catalog struct {
	books      map[core.BookIDString]*bookSlot
	students   map[core.StudentIDString]*studentSlot
	bookIDs    []core.BookIDString
	studentIDs []core.StudentIDString
}

type bookSlot struct {
	mu    sync.Mutex
	state atomic.Pointer[core.Book]
}

type studentSlot struct {
	mu    sync.Mutex
	state atomic.Pointer[core.Student]
}

// NewStore creates an empty Store.
func NewStore(options ...Option) *Store {
	s := &Store{}
	s.catalog.Store(&catalog{
		books:    map[core.BookIDString]*bookSlot{},
		students: map[core.StudentIDString]*studentSlot{},
	})

	for _, option := range options {
		option(s)
	}

	return s
}

// AddBook puts a new book on the shelf with all copies available.
// onCommit, if not nil, runs before the book becomes visible to other callers.
func (s *Store) AddBook(book core.Book, onCommit func(core.Book)) error {
	if err := book.Validate(); err != nil {
		return err
	}

	book = core.BuildBook(book.ID, book.Title, book.Author, book.ISBN, book.TotalCopies)

	s.structural.Lock()
	defer s.structural.Unlock()

	current := s.catalog.Load()
	if _, exists := current.books[book.ID]; exists {
		return core.ErrDuplicateBook
	}

	slot := &bookSlot{}
	slot.state.Store(&book)

	next := current.shallowCopy()
	next.books[book.ID] = slot
	next.bookIDs = insertSorted(next.bookIDs, book.ID, core.CompareBookIDs)

	if onCommit != nil {
		onCommit(book)
	}

	s.catalog.Store(next)
	s.logDebug(logMsgBookAdded, logAttrBookID, book.ID, logAttrTotalCopies, book.TotalCopies)

	return nil
}

// EnrollStudent registers a new student without any lending history.
// onCommit, if not nil, runs before the student becomes visible to other callers.
func (s *Store) EnrollStudent(student core.Student, onCommit func(core.Student)) error {
	if err := student.Validate(); err != nil {
		return err
	}

	student = core.BuildStudent(student.ID, student.Name, student.Email, student.ClassLabel)

	s.structural.Lock()
	defer s.structural.Unlock()

	current := s.catalog.Load()
	if _, exists := current.students[student.ID]; exists {
		return core.ErrDuplicateStudent
	}

	slot := &studentSlot{}
	slot.state.Store(&student)

	next := current.shallowCopy()
	next.students[student.ID] = slot
	next.studentIDs = insertSorted(next.studentIDs, student.ID, strings.Compare)

	if onCommit != nil {
		onCommit(student)
	}

	s.catalog.Store(next)
	s.logDebug(logMsgStudentEnrolled, logAttrStudentID, student.ID)

	return nil
}

// GetBook returns a snapshot of one book.
func (s *Store) GetBook(id core.BookIDString) (core.Book, error) {
	slot, ok := s.catalog.Load().books[id]
	if !ok {
		return core.Book{}, core.ErrUnknownBook
	}

	return slot.state.Load().Clone(), nil
}

// GetStudent returns a snapshot of one student.
func (s *Store) GetStudent(id core.StudentIDString) (core.Student, error) {
	slot, ok := s.catalog.Load().students[id]
	if !ok {
		return core.Student{}, core.ErrUnknownStudent
	}

	return *slot.state.Load(), nil
}

// ListBooks returns snapshots of all books ordered by id.
func (s *Store) ListBooks() []core.Book {
	cat := s.catalog.Load()
	books := make([]core.Book, 0, len(cat.bookIDs))

	for _, id := range cat.bookIDs {
		books = append(books, cat.books[id].state.Load().Clone())
	}

	return books
}

// ListStudents returns snapshots of all students ordered by id.
func (s *Store) ListStudents() []core.Student {
	cat := s.catalog.Load()
	students := make([]core.Student, 0, len(cat.studentIDs))

	for _, id := range cat.studentIDs {
		students = append(students, *cat.students[id].state.Load())
	}

	return students
}

// History returns all closed borrow records in the order they were closed.
func (s *Store) History() []core.BorrowRecord {
	return s.history.snapshot()
}

func (c *catalog) shallowCopy() *catalog {
	next := &catalog{
		books:      make(map[core.BookIDString]*bookSlot, len(c.books)+1),
		students:   make(map[core.StudentIDString]*studentSlot, len(c.students)+1),
		bookIDs:    slices.Clone(c.bookIDs),
		studentIDs: slices.Clone(c.studentIDs),
	}

	for id, slot := range c.books {
		next.books[id] = slot
	}

	for id, slot := range c.students {
		next.students[id] = slot
	}

	return next
}

func insertSorted[S ~[]E, E any](ids S, id E, cmp func(a, b E) int) S {
	pos, _ := slices.BinarySearchFunc(ids, id, cmp)
	return slices.Insert(ids, pos, id)
}

func (s *Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

package httpapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AntonStoeckl/school-library-lending/features/command/addbook"
	"github.com/AntonStoeckl/school-library-lending/features/command/enrollstudent"
	"github.com/AntonStoeckl/school-library-lending/features/command/lendbook"
	"github.com/AntonStoeckl/school-library-lending/features/command/returnbook"
	"github.com/AntonStoeckl/school-library-lending/features/query/batchborrowed"
	"github.com/AntonStoeckl/school-library-lending/features/query/bookhistory"
	"github.com/AntonStoeckl/school-library-lending/features/query/borrowedbooks"
	"github.com/AntonStoeckl/school-library-lending/features/query/overduebooks"
	"github.com/AntonStoeckl/school-library-lending/features/query/searchbooks"
	"github.com/AntonStoeckl/school-library-lending/features/query/searchstudents"
	"github.com/AntonStoeckl/school-library-lending/features/query/studentcurrentborrows"
	"github.com/AntonStoeckl/school-library-lending/features/query/usagereport"
)

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.app.Group("/api")

	api.Post("/issues/:studentID/:bookID", s.lendBook)
	api.Post("/returns/:studentID/:bookID", s.returnBook)
	api.Get("/issues/overdue", s.overdueBooks)
	api.Get("/issues/batch/:code", s.batchBorrowed)

	api.Get("/books", s.searchBooks)
	api.Post("/books", s.addBook)
	api.Get("/books/borrowed", s.borrowedBooks)
	api.Get("/books/:bookID/history", s.bookHistory)

	api.Get("/students", s.searchStudents)
	api.Post("/students", s.enrollStudent)
	api.Get("/students/:studentID/issues", s.studentCurrentBorrows)

	api.Get("/reports/usage", s.usageReport)
}

func (s *Server) lendBook(c *fiber.Ctx) error {
	command := lendbook.BuildCommand(c.Params("studentID"), c.Params("bookID"), s.now())

	record, err := s.handlers.LendBook.Handle(c.UserContext(), command)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, "book lent", toRecordDTO(record))
}

func (s *Server) returnBook(c *fiber.Ctx) error {
	command := returnbook.BuildCommand(c.Params("studentID"), c.Params("bookID"), s.now())

	record, err := s.handlers.ReturnBook.Handle(c.UserContext(), command)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "book returned", toRecordDTO(record))
}

// overdueBooks accepts an optional limit, evaluated lazily, and an optional RFC 3339 "at" time.
func (s *Server) overdueBooks(c *fiber.Ctx) error {
	limit, err := nonNegativeQueryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	now := s.now()
	if raw := c.Query("at"); raw != "" {
		if now, err = time.Parse(time.RFC3339, raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "at must be an RFC 3339 timestamp")
		}
	}

	entries, err := s.handlers.OverdueBooks.Handle(c.UserContext(), overduebooks.BuildQuery(now))
	if err != nil {
		return err
	}

	dtos := make([]overdueDTO, 0)
	for entry := range entries {
		dtos = append(dtos, toOverdueDTO(entry))
		if limit > 0 && len(dtos) == limit {
			break
		}
	}

	return success(c, fiber.StatusOK, "overdue books", dtos)
}

func (s *Server) batchBorrowed(c *fiber.Ctx) error {
	result, err := s.handlers.BatchBorrowed.Handle(c.UserContext(), batchborrowed.BuildQuery(c.Params("code")))
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "batch borrowed books", toBatchDTO(result))
}

func (s *Server) searchBooks(c *fiber.Ctx) error {
	result, err := s.handlers.SearchBooks.Handle(c.UserContext(), searchbooks.BuildQuery(c.Query("q")))
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "books", toBookDTOs(result.Books))
}

func (s *Server) addBook(c *fiber.Ctx) error {
	var request addBookRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	if err := validate.Struct(request); err != nil {
		return err
	}

	command := addbook.BuildCommand(request.ID, request.Title, request.Author, request.ISBN, *request.Copies, s.now())

	book, err := s.handlers.AddBook.Handle(c.UserContext(), command)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, "book added", toBookDTO(book))
}

func (s *Server) borrowedBooks(c *fiber.Ctx) error {
	result, err := s.handlers.BorrowedBooks.Handle(c.UserContext(), borrowedbooks.BuildQuery())
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "borrowed books", toBookDTOs(result.Books))
}

func (s *Server) bookHistory(c *fiber.Ctx) error {
	result, err := s.handlers.BookHistory.Handle(c.UserContext(), bookhistory.BuildQuery(c.Params("bookID")))
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "book history", toRecordDTOs(result.Records))
}

func (s *Server) searchStudents(c *fiber.Ctx) error {
	result, err := s.handlers.SearchStudents.Handle(c.UserContext(), searchstudents.BuildQuery(c.Query("q")))
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "students", toStudentDTOs(result.Students))
}

func (s *Server) enrollStudent(c *fiber.Ctx) error {
	var request enrollStudentRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	if err := validate.Struct(request); err != nil {
		return err
	}

	command := enrollstudent.BuildCommand(request.ID, request.Name, request.Email, request.ClassLabel, s.now())

	student, err := s.handlers.EnrollStudent.Handle(c.UserContext(), command)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, "student enrolled", toStudentDTO(student))
}

func (s *Server) studentCurrentBorrows(c *fiber.Ctx) error {
	query := studentcurrentborrows.BuildQuery(c.Params("studentID"))

	result, err := s.handlers.StudentCurrentBorrows.Handle(c.UserContext(), query)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "current borrows", toCurrentBorrowDTOs(result))
}

func (s *Server) usageReport(c *fiber.Ctx) error {
	topN, err := nonNegativeQueryInt(c, "top", s.defaultTopN)
	if err != nil {
		return err
	}

	report, err := s.handlers.UsageReport.Handle(c.UserContext(), usagereport.BuildQuery(topN))
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "usage report", toUsageDTOs(report))
}

func nonNegativeQueryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be a non-negative integer")
	}

	return value, nil
}

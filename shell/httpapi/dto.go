package httpapi

import (
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/query/batchborrowed"
	"github.com/AntonStoeckl/school-library-lending/features/query/overduebooks"
	"github.com/AntonStoeckl/school-library-lending/features/query/studentcurrentborrows"
	"github.com/AntonStoeckl/school-library-lending/features/query/usagereport"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type envelope struct {
	Code    int               `json:"code"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type addBookRequest struct {
	ID     string `json:"id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Copies *int   `json:"copies" validate:"required,min=0"`
}

type enrollStudentRequest struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email"`
	ClassLabel string `json:"class_label"`
}

type recordDTO struct {
	RecordID   string     `json:"record_id"`
	BookID     string     `json:"book_id"`
	StudentID  string     `json:"student_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

type bookDTO struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Author          string      `json:"author"`
	ISBN            string      `json:"isbn,omitempty"`
	TotalCopies     int         `json:"total_copies"`
	AvailableCopies int         `json:"available_copies"`
	Active          []recordDTO `json:"active,omitempty"`
}

type studentDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	ClassLabel    string `json:"class_label"`
	BooksOut      int    `json:"books_out"`
	BooksReturned int    `json:"books_returned"`
}

type overdueDTO struct {
	recordDTO
	Title       string `json:"title"`
	DaysOverdue int    `json:"days_overdue"`
}

type batchBookDTO struct {
	BookID  string      `json:"book_id"`
	Title   string      `json:"title"`
	Records []recordDTO `json:"records"`
}

type batchDTO struct {
	BatchCode string         `json:"batch_code"`
	ClassName string         `json:"class_name"`
	Books     []batchBookDTO `json:"books"`
	Count     int            `json:"count"`
}

type currentBorrowDTO struct {
	RecordID   string    `json:"record_id"`
	BookID     string    `json:"book_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	BorrowedAt time.Time `json:"borrowed_at"`
	DueAt      time.Time `json:"due_at"`
}

type bookUsageDTO struct {
	BookID      string `json:"book_id"`
	Title       string `json:"title"`
	BorrowCount int    `json:"borrow_count"`
}

type classUsageDTO struct {
	ClassID       string         `json:"class_id"`
	ClassName     string         `json:"class_name"`
	TotalBorrowed int            `json:"total_borrowed"`
	TopBooks      []bookUsageDTO `json:"top_books"`
}

func toRecordDTO(record core.BorrowRecord) recordDTO {
	return recordDTO{
		RecordID:   record.ID,
		BookID:     record.BookID,
		StudentID:  record.StudentID,
		BorrowedAt: record.BorrowedAt,
		DueAt:      record.DueAt,
		ReturnedAt: record.ReturnedAt,
	}
}

func toRecordDTOs(records []core.BorrowRecord) []recordDTO {
	dtos := make([]recordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toRecordDTO(record))
	}

	return dtos
}

func toBookDTO(book core.Book) bookDTO {
	dto := bookDTO{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.ISBN,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
	}

	if len(book.Active) > 0 {
		dto.Active = toRecordDTOs(book.Active)
	}

	return dto
}

func toBookDTOs(books []core.Book) []bookDTO {
	dtos := make([]bookDTO, 0, len(books))
	for _, book := range books {
		dtos = append(dtos, toBookDTO(book))
	}

	return dtos
}

func toStudentDTO(student core.Student) studentDTO {
	return studentDTO{
		ID:            student.ID,
		Name:          student.Name,
		Email:         student.Email,
		ClassLabel:    student.ClassLabel,
		BooksOut:      student.BooksOut,
		BooksReturned: student.BooksReturned,
	}
}

func toStudentDTOs(students []core.Student) []studentDTO {
	dtos := make([]studentDTO, 0, len(students))
	for _, student := range students {
		dtos = append(dtos, toStudentDTO(student))
	}

	return dtos
}

func toOverdueDTO(entry overduebooks.OverdueEntry) overdueDTO {
	return overdueDTO{
		recordDTO:   toRecordDTO(entry.Record),
		Title:       entry.Book.Title,
		DaysOverdue: entry.DaysOverdue,
	}
}

func toBatchDTO(result batchborrowed.BatchBorrowed) batchDTO {
	dto := batchDTO{
		BatchCode: result.BatchCode,
		ClassName: result.ClassName,
		Books:     make([]batchBookDTO, 0, len(result.Books)),
		Count:     result.Count,
	}

	for _, entry := range result.Books {
		dto.Books = append(dto.Books, batchBookDTO{
			BookID:  entry.Book.ID,
			Title:   entry.Book.Title,
			Records: toRecordDTOs(entry.Records),
		})
	}

	return dto
}

func toCurrentBorrowDTOs(result studentcurrentborrows.CurrentBorrows) []currentBorrowDTO {
	dtos := make([]currentBorrowDTO, 0, len(result.Borrows))
	for _, borrow := range result.Borrows {
		dtos = append(dtos, currentBorrowDTO{
			RecordID:   borrow.RecordID,
			BookID:     borrow.BookID,
			Title:      borrow.Title,
			Author:     borrow.Author,
			BorrowedAt: borrow.BorrowedAt,
			DueAt:      borrow.DueAt,
		})
	}

	return dtos
}

func toUsageDTOs(report usagereport.UsageReport) []classUsageDTO {
	dtos := make([]classUsageDTO, 0, len(report.Classes))
	for _, class := range report.Classes {
		dto := classUsageDTO{
			ClassID:       class.ClassID,
			ClassName:     class.ClassName,
			TotalBorrowed: class.TotalBorrowed,
			TopBooks:      make([]bookUsageDTO, 0, len(class.TopBooks)),
		}

		for _, usage := range class.TopBooks {
			dto.TopBooks = append(dto.TopBooks, bookUsageDTO{BookID: usage.BookID, Title: usage.Title, BorrowCount: usage.BorrowCount})
		}

		dtos = append(dtos, dto)
	}

	return dtos
}

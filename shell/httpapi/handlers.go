package httpapi

import (
	"time"

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
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell"
)

// Handlers bundles every command and query handler the API routes to.
type Handlers struct {
	AddBook       addbook.CommandHandler
	EnrollStudent enrollstudent.CommandHandler
	LendBook      lendbook.CommandHandler
	ReturnBook    returnbook.CommandHandler

	OverdueBooks          overduebooks.QueryHandler
	BatchBorrowed         batchborrowed.QueryHandler
	StudentCurrentBorrows studentcurrentborrows.QueryHandler
	SearchBooks           searchbooks.QueryHandler
	SearchStudents        searchstudents.QueryHandler
	UsageReport           usagereport.QueryHandler
	BookHistory           bookhistory.QueryHandler
	BorrowedBooks         borrowedbooks.QueryHandler
}

// HandlerSettings configures the command handlers built by NewHandlers.
// A nil Recorder discards events, a nil Logger disables handler logging.
type HandlerSettings struct {
	LoanPeriod  time.Duration
	BorrowLimit int
	Recorder    shell.EventRecorder
	Logger      shell.Logger
}

// NewHandlers wires all handlers to one inventory store.
func NewHandlers(store *inventory.Store, settings HandlerSettings) Handlers {
	recorder := settings.Recorder
	if recorder == nil {
		recorder = shell.NopRecorder{}
	}

	addOpts := []addbook.Option{addbook.WithRecorder(recorder)}
	enrollOpts := []enrollstudent.Option{enrollstudent.WithRecorder(recorder)}
	lendOpts := []lendbook.Option{
		lendbook.WithRecorder(recorder),
		lendbook.WithLoanPeriod(settings.LoanPeriod),
		lendbook.WithBorrowLimit(settings.BorrowLimit),
	}
	returnOpts := []returnbook.Option{returnbook.WithRecorder(recorder)}

	if settings.Logger != nil {
		addOpts = append(addOpts, addbook.WithLogger(settings.Logger))
		enrollOpts = append(enrollOpts, enrollstudent.WithLogger(settings.Logger))
		lendOpts = append(lendOpts, lendbook.WithLogger(settings.Logger))
		returnOpts = append(returnOpts, returnbook.WithLogger(settings.Logger))
	}

	return Handlers{
		AddBook:       addbook.NewCommandHandler(store, addOpts...),
		EnrollStudent: enrollstudent.NewCommandHandler(store, enrollOpts...),
		LendBook:      lendbook.NewCommandHandler(store, lendOpts...),
		ReturnBook:    returnbook.NewCommandHandler(store, returnOpts...),

		OverdueBooks:          overduebooks.NewQueryHandler(store),
		BatchBorrowed:         batchborrowed.NewQueryHandler(store),
		StudentCurrentBorrows: studentcurrentborrows.NewQueryHandler(store),
		SearchBooks:           searchbooks.NewQueryHandler(store),
		SearchStudents:        searchstudents.NewQueryHandler(store),
		UsageReport:           usagereport.NewQueryHandler(store),
		BookHistory:           bookhistory.NewQueryHandler(store),
		BorrowedBooks:         borrowedbooks.NewQueryHandler(store),
	}
}

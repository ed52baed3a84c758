package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/journal/postgresengine"
	"github.com/AntonStoeckl/school-library-lending/journal/sqliteengine"
	"github.com/AntonStoeckl/school-library-lending/shell"
	"github.com/AntonStoeckl/school-library-lending/shell/config"
	"github.com/AntonStoeckl/school-library-lending/shell/httpapi"
)

const (
	logMsgRuntimeReady = "libraryd: inventory ready"
	logAttrDriver      = "journal_driver"
	logAttrBooks       = "books"
	logAttrStudents    = "students"
)

// runtime is the wired application: the authoritative in-memory inventory,
// rebuilt from the journal, and the outbox that persists new events.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *inventory.Store
	outbox   *shell.Outbox
	handlers httpapi.Handlers
	closers  []func() error
}

func openRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (*runtime, error) {
	rt := &runtime{
		cfg:    cfg,
		logger: logger,
		store:  inventory.NewStore(inventory.WithLogger(logger)),
	}

	journalEngine, err := rt.openJournal(ctx)
	if err != nil {
		return nil, err
	}

	var recorder shell.EventRecorder = shell.NopRecorder{}

	if journalEngine != nil {
		if _, err := shell.Replay(ctx, journalEngine, rt.store, logger); err != nil {
			_ = rt.close()
			return nil, err
		}

		rt.outbox = shell.NewOutbox(journalEngine, shell.WithOutboxLogger(logger))
		recorder = rt.outbox
	}

	rt.handlers = httpapi.NewHandlers(rt.store, httpapi.HandlerSettings{
		LoanPeriod:  cfg.LoanPeriod,
		BorrowLimit: cfg.BorrowLimit,
		Recorder:    recorder,
		Logger:      logger,
	})

	logger.Info(
		logMsgRuntimeReady,
		logAttrDriver, cfg.JournalDriver,
		logAttrBooks, len(rt.store.ListBooks()),
		logAttrStudents, len(rt.store.ListStudents()),
	)

	return rt, nil
}

// openJournal returns nil for the "none" driver.
func (rt *runtime) openJournal(ctx context.Context) (shell.Journal, error) {
	switch rt.cfg.JournalDriver {
	case config.JournalDriverNone:
		return nil, nil

	case config.JournalDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(rt.cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}

		engine, err := sqliteengine.Open(ctx, rt.cfg.SQLitePath, sqliteengine.WithLogger(rt.logger))
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, engine.Close)

		return engine, nil

	case config.JournalDriverPostgres:
		engine, err := rt.openPostgres(ctx)
		if err != nil {
			_ = rt.close()
			return nil, err
		}

		if err := engine.EnsureSchema(ctx); err != nil {
			_ = rt.close()
			return nil, err
		}

		return engine, nil

	default:
		return nil, fmt.Errorf("%w: journal driver %q", config.ErrInvalidSetting, rt.cfg.JournalDriver)
	}
}

func (rt *runtime) openPostgres(ctx context.Context) (postgresengine.Engine, error) {
	options := []postgresengine.Option{postgresengine.WithLogger(rt.logger)}

	switch rt.cfg.PostgresAdapter {
	case config.PostgresAdapterSQL:
		db, err := config.PostgresSQLDB(ctx, rt.cfg.PostgresDSN)
		if err != nil {
			return postgresengine.Engine{}, err
		}
		rt.closers = append(rt.closers, db.Close)

		return postgresengine.NewEngineFromSQLDB(db, options...)

	case config.PostgresAdapterSQLX:
		db, err := config.PostgresSQLX(ctx, rt.cfg.PostgresDSN)
		if err != nil {
			return postgresengine.Engine{}, err
		}
		rt.closers = append(rt.closers, db.Close)

		return postgresengine.NewEngineFromSQLX(db, options...)

	default:
		pool, err := config.PostgresPGXPool(ctx, rt.cfg.PostgresDSN)
		if err != nil {
			return postgresengine.Engine{}, err
		}
		rt.closers = append(rt.closers, func() error { pool.Close(); return nil })

		return postgresengine.NewEngineFromPGXPool(pool, options...)
	}
}

// flush persists all recorded events. It is a no-op without a journal.
func (rt *runtime) flush(ctx context.Context) error {
	if rt.outbox == nil {
		return nil
	}

	return rt.outbox.Flush(ctx)
}

func (rt *runtime) close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	rt.closers = nil

	return errors.Join(errs...)
}

package journal

import (
	"errors"
)

var (
	ErrEmptyEventsTableName        = errors.New("events table name must not be empty")
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrNoEventsToAppend            = errors.New("no events to append")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrAppendingEventFailed        = errors.New("appending event failed")
	ErrCreatingTableFailed         = errors.New("creating events table failed")
)

// MaxSequenceNumberUint is the highest sequence number returned by a query.
type MaxSequenceNumberUint = uint

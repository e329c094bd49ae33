package audit

import (
	"context"
	"errors"
)

// ErrNoLogs is returned by list operations when the trail holds no rows at
// all. Callers use it to distinguish an empty trail from a store failure.
var ErrNoLogs = errors.New("audit: no logs recorded")

// LogRepository persists and reads the audit trail.
type LogRepository interface {
	Insert(ctx context.Context, log *Log) error
	// ListRecent returns up to limit rows, newest first. It returns
	// ErrNoLogs when the trail is empty.
	ListRecent(ctx context.Context, limit int) ([]*Log, error)
	// List returns a page of rows, newest first, with the total row count.
	List(ctx context.Context, limit, offset int) ([]*Log, int, error)
}

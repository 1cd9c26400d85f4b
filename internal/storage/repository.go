package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("storage: not found")
	ErrInvalidEventKind = errors.New("storage: invalid event kind")
)

type Repository interface {
	RecordEvent(ctx context.Context, in DoseEvent) (DoseEvent, error)
	GetEvent(ctx context.Context, id string) (DoseEvent, error)
	ListEvents(ctx context.Context, filter DoseEventFilter) ([]DoseEvent, error)
	CountByKind(ctx context.Context, reminderID string) (map[EventKind]int, error)
	Close() error
}

package views

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dhwiwwx/tracker-api/models"
)

// ReadMarker adds a viewer to a record's readBy set. Implementations
// must be idempotent: marking an already-read record is a no-op.
type ReadMarker interface {
	MarkRead(ctx context.Context, recordID primitive.ObjectID, viewerID string) error
}

// SortByRecency returns a copy of records ordered by createdAt
// descending. Records whose server timestamp has not resolved yet
// (zero createdAt) sort as oldest, so they land at the end until the
// next re-render picks up the real timestamp.
func SortByRecency(records []models.ActivityRecord) []models.ActivityRecord {
	out := make([]models.ActivityRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// UnreadCount counts the records the viewer has not read.
func UnreadCount(records []models.ActivityRecord, viewerID string) int {
	n := 0
	for _, rec := range records {
		if !rec.IsReadBy(viewerID) {
			n++
		}
	}
	return n
}

// MarkAllRead issues one MarkRead mutation per unread record.
// Mutations are fire-and-forget: failures are logged and not retried.
// Returns the number of mutations issued.
func MarkAllRead(ctx context.Context, records []models.ActivityRecord, viewerID string, marker ReadMarker) int {
	issued := 0
	for _, rec := range records {
		if rec.IsReadBy(viewerID) {
			continue
		}
		issued++
		if err := marker.MarkRead(ctx, rec.ID, viewerID); err != nil {
			zap.L().Warn("Failed to mark activity record read",
				zap.String("record", rec.ID.Hex()),
				zap.Error(err))
		}
	}
	return issued
}

// Feed gates the mark-as-read pass on the closed-to-open edge of the
// activity panel. Open runs MarkAllRead only when the feed was closed;
// while it stays open further Open calls do nothing. Already-read
// records never get a second mutation either way, since MarkAllRead
// skips them.
type Feed struct {
	mu   sync.Mutex
	open bool
}

// Open transitions the feed to open and, on the edge, marks every
// unread record read. Returns the number of mutations issued.
func (f *Feed) Open(ctx context.Context, records []models.ActivityRecord, viewerID string, marker ReadMarker) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		return 0
	}
	f.open = true
	return MarkAllRead(ctx, records, viewerID, marker)
}

// Close transitions the feed back to closed so the next Open fires
// another pass.
func (f *Feed) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

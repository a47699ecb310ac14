package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dhwiwwx/tracker-api/models"
)

// fakeMarker collects mark-read calls and mirrors them back onto the
// records it was built over, the way the store's subscription would.
type fakeMarker struct {
	records []models.ActivityRecord
	calls   int
	fail    bool
}

func (m *fakeMarker) MarkRead(ctx context.Context, recordID primitive.ObjectID, viewerID string) error {
	m.calls++
	if m.fail {
		return errors.New("store unavailable")
	}
	for i := range m.records {
		if m.records[i].ID == recordID && !m.records[i].IsReadBy(viewerID) {
			m.records[i].ReadBy = append(m.records[i].ReadBy, viewerID)
		}
	}
	return nil
}

func record(readBy []string, createdAt time.Time) models.ActivityRecord {
	return models.ActivityRecord{
		ID:        primitive.NewObjectID(),
		ReadBy:    readBy,
		CreatedAt: createdAt,
	}
}

func TestUnreadCount(t *testing.T) {
	records := []models.ActivityRecord{
		record([]string{"u1"}, time.Now()),
		record(nil, time.Now()),
		record([]string{"u2"}, time.Now()),
	}

	if got := UnreadCount(records, "u1"); got != 2 {
		t.Errorf("unread for u1 = %d, want 2", got)
	}
	if got := UnreadCount(nil, "u1"); got != 0 {
		t.Errorf("unread for empty feed = %d, want 0", got)
	}
}

// A full pass leaves zero unread and never increases the count.
func TestMarkAllRead_DrainsUnread(t *testing.T) {
	records := []models.ActivityRecord{
		record(nil, time.Now()),
		record([]string{"viewer"}, time.Now()),
		record([]string{"someone-else"}, time.Now()),
	}
	marker := &fakeMarker{records: records}

	before := UnreadCount(records, "viewer")
	issued := MarkAllRead(context.Background(), records, "viewer", marker)

	if issued != 2 {
		t.Errorf("issued %d mutations, want 2", issued)
	}
	after := UnreadCount(marker.records, "viewer")
	if after > before {
		t.Errorf("unread grew from %d to %d", before, after)
	}
	if after != 0 {
		t.Errorf("unread after full pass = %d, want 0", after)
	}
}

// Mutations are skipped entirely for already-read records, so a second
// pass over the refreshed feed issues nothing.
func TestMarkAllRead_IdempotentOnReadRecords(t *testing.T) {
	records := []models.ActivityRecord{record(nil, time.Now())}
	marker := &fakeMarker{records: records}

	MarkAllRead(context.Background(), records, "viewer", marker)
	if issued := MarkAllRead(context.Background(), marker.records, "viewer", marker); issued != 0 {
		t.Errorf("second pass issued %d mutations, want 0", issued)
	}
}

// Failures are logged, not retried; the pass keeps going.
func TestMarkAllRead_NoRetryOnFailure(t *testing.T) {
	records := []models.ActivityRecord{
		record(nil, time.Now()),
		record(nil, time.Now()),
	}
	marker := &fakeMarker{records: records, fail: true}

	issued := MarkAllRead(context.Background(), records, "viewer", marker)
	if issued != 2 {
		t.Errorf("issued = %d, want 2 despite failures", issued)
	}
	if marker.calls != 2 {
		t.Errorf("marker called %d times, want exactly 2 (no retries)", marker.calls)
	}
}

// Open fires only on the closed-to-open edge.
func TestFeed_EdgeTriggeredOpen(t *testing.T) {
	records := []models.ActivityRecord{record(nil, time.Now())}
	marker := &fakeMarker{records: records}
	var feed Feed

	if issued := feed.Open(context.Background(), records, "viewer", marker); issued != 1 {
		t.Fatalf("first open issued %d, want 1", issued)
	}
	if issued := feed.Open(context.Background(), records, "viewer", marker); issued != 0 {
		t.Errorf("open while already open issued %d, want 0", issued)
	}

	feed.Close()
	// Reopening runs another pass, but the refreshed records are read
	// now, so nothing is re-issued.
	if issued := feed.Open(context.Background(), marker.records, "viewer", marker); issued != 0 {
		t.Errorf("reopen issued %d mutations for read records, want 0", issued)
	}
}

func TestSortByRecency(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	oldest := record(nil, base.Add(-time.Hour))
	newest := record(nil, base.Add(time.Hour))
	middle := record(nil, base)
	pending := record(nil, time.Time{}) // server timestamp not resolved yet

	got := SortByRecency([]models.ActivityRecord{pending, oldest, newest, middle})

	want := []primitive.ObjectID{newest.ID, middle.ID, oldest.ID, pending.ID}
	for i, rec := range got {
		if rec.ID != want[i] {
			t.Fatalf("position %d: got record %s, want %s", i, rec.ID.Hex(), want[i].Hex())
		}
	}
}

package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	if ContentHashHex([]byte("aaa")) == ContentHashHex([]byte("bbb")) {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	// BLAKE3 of empty input is a published test vector.
	want := "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"
	if h := ContentHashHex([]byte{}); h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	data := []byte("# Title\n")
	job := NewJob("u1", "a.md", data)

	if job.ID == "" {
		t.Fatal("expected job ID")
	}
	if other := NewJob("u1", "a.md", data); other.ID == job.ID {
		t.Error("expected unique job IDs")
	}
	if job.DocID != ContentHashHex(data)[:16] {
		t.Errorf("expected doc ID from content hash, got %q", job.DocID)
	}
	if job.Status != StatusQueued {
		t.Errorf("expected %q, got %q", StatusQueued, job.Status)
	}
	opts, target, force := job.options()
	if !opts.IncludeContent || target != nil || force {
		t.Errorf("expected default options, got %+v %v %v", opts, target, force)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("u1", "a.md", []byte("x"))

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusReading, "reading"},
		{StatusOutlining, "outlining"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.updatedAt()
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		snap := job.Snapshot()
		if snap.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, snap.Status)
		}
		if snap.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, snap.Phase)
		}
		if !job.updatedAt().After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("u1", "a.md", nil)
	job.AddError("reader failed")
	job.AddError("store failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "reader failed" {
		t.Errorf("expected first error %q, got %q", "reader failed", snap.Progress.Errors[0])
	}
}

func TestJob_SetResult(t *testing.T) {
	job := NewJob("u1", "notes.md", nil)
	out, err := outline.Assemble(outline.Blocks{
		1: {ID: 1, Depth: 1, ChildrenIDs: []int{2}, AggregateStats: outline.WordStatistics{Count: outline.WordCount{Words: 7}}},
		2: {ID: 2, Depth: 2, ParentID: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	job.SetResult("notes", "markdown", "abc", out)

	snap := job.Snapshot()
	if snap.Title != "notes" || snap.Format != "markdown" {
		t.Errorf("unexpected title/format %q/%q", snap.Title, snap.Format)
	}
	if snap.Progress.Blocks != 2 || snap.Progress.Roots != 1 || snap.Progress.Words != 7 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	if snap.Outline != out {
		t.Error("expected snapshot to carry the outline")
	}
}

func TestJob_FileData(t *testing.T) {
	job := NewJob("u1", "a.md", nil)
	data := []byte("file content here")
	job.SetFileData(data)
	if got := job.FileData(); string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
	job.releaseFileData()
	if job.FileData() != nil {
		t.Error("expected file data released")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	snap := NewJob("u1", "a.md", nil).Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("u1", "a.md", nil)
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Fatal("expected to get job back")
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("u1", "old.md", nil)
	store.Put(expired)

	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("u1", "new.md", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

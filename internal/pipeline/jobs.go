package pipeline

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/dgallion1/docoutline/internal/outline"
)

// JobStatus represents the state of an outline job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusReading    JobStatus = "reading"
	StatusOutlining  JobStatus = "outlining"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single document outline run.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	DocID  string `json:"doc_id"`
	UserID string `json:"user_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Format   string    `json:"format,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	opts     outline.Options
	target   *outline.WordsTarget
	force    bool
	result   *outline.Outline
	errors   []string
}

// Progress summarizes the outline produced by a job.
type Progress struct {
	Blocks int      `json:"blocks"`
	Roots  int      `json:"roots"`
	Words  int      `json:"words"`
	Errors []string `json:"errors"`
}

// NewJob returns a queued job with a fresh ID. The document ID defaults to a
// prefix of the content hash.
func NewJob(userID, filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		DocID:     ContentHashHex(data)[:16],
		UserID:    userID,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
		opts:      outline.DefaultOptions(),
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetOptions sets how the document is outlined. target may be nil.
func (j *Job) SetOptions(opts outline.Options, target *outline.WordsTarget, force bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.opts = opts
	j.target = target
	j.force = force
}

// SetResult records the finished outline. The title defaults to the
// document name.
func (j *Job) SetResult(name, format, contentHash string, out *outline.Outline) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Title == "" {
		j.Title = name
	}
	j.Format = format
	j.ContentHash = contentHash
	j.result = out
	j.Progress.Blocks = out.Len()
	j.Progress.Roots = len(out.Items)
	j.Progress.Words = out.Stats.Count.Words
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFileData drops the upload once it has been read.
func (j *Job) releaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

func (j *Job) options() (outline.Options, *outline.WordsTarget, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.opts, j.target, j.force
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string           `json:"job_id"`
	DocID    string           `json:"doc_id"`
	UserID   string           `json:"user_id"`
	Status   JobStatus        `json:"status"`
	Phase    string           `json:"phase"`
	Filename string           `json:"filename"`
	Title    string           `json:"title"`
	Format   string           `json:"format,omitempty"`
	Progress Progress         `json:"progress"`
	Outline  *outline.Outline `json:"outline,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. The outline is shared,
// not copied; it is never modified after the job sets it.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		UserID:   j.UserID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Format:   j.Format,
		Progress: Progress{
			Blocks: j.Progress.Blocks,
			Roots:  j.Progress.Roots,
			Words:  j.Progress.Words,
			Errors: errs,
		},
		Outline: j.result,
	}
}

// ContentHashHex computes the BLAKE3 digest of content and returns it as hex.
func ContentHashHex(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

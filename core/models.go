package core

import (
	"time"
)

// ID is a unique identifier for stored domain entities.
// Grant IDs are assigned by the catalog store from a sequence.
type ID uint64

// GrantRecord is an immutable snapshot of a funding program, produced by the
// ingestion pipeline and read-only to the matching core. A grant's position in
// the canonical catalog query (described grants, newest scrape first) is its
// identity for embedding-cache alignment.
type GrantRecord struct {
	Id                 ID
	Source             string
	ProgramName        string
	Description        string
	Summary            string
	Deadline           string
	FundingLow         string // monetary text as scraped, e.g. "$5,000"; may be empty
	FundingHigh        string
	Eligibility        string
	Interests          string
	ApplicationProcess string
	Contact            string
	URL                string
	ScrapedAt          time.Time
	InsertedAt         time.Time
}

// MatchText returns the combined free text that scoring rules match against:
// description plus eligibility rules.
func (g *GrantRecord) MatchText() string {
	return g.Description + " " + g.Eligibility
}

// EmbedText returns the text submitted for embedding. The same derivation is
// used by every generation path so cached vectors stay comparable.
func (g *GrantRecord) EmbedText() string {
	return g.Description + " " + g.Eligibility
}

// UserProfile is the matching-relevant view of a funding seeker.
// Owned by the profile store; read-only to the matching core.
type UserProfile struct {
	UserID           string
	Name             string
	Age              int
	Residency        string
	Income           string
	Gender           string
	StudentStatus    string // e.g. "Full-time", "Part-time"; empty when not a student
	ImmigrantStatus  string // "yes"/"no"-style free string
	IndigenousStatus string
	VeteranStatus    string
	FundingGoalLow   int64 // dollars; 0 means unset
	FundingGoalHigh  int64
	FundingPurpose   []string
	EligibilityTags  []string // free-form lowercase tags
	ProjectSummary   string
	CreatedAt        time.Time
}

// JobState is the lifecycle state of a batch embedding job.
type JobState int

const (
	// JobStateSubmitted means the job was accepted but not yet observed running.
	JobStateSubmitted JobState = iota + 1
	// JobStateRunning means the provider reports the job in progress.
	JobStateRunning
	// JobStateSucceeded is terminal; results may be downloaded.
	JobStateSucceeded
	// JobStateFailed is terminal.
	JobStateFailed
	// JobStateCancelled is terminal.
	JobStateCancelled
	// JobStateExpired is terminal.
	JobStateExpired
)

// Terminal reports whether the state permits no further transitions.
func (s JobState) Terminal() bool {
	switch s {
	case JobStateSucceeded, JobStateFailed, JobStateCancelled, JobStateExpired:
		return true
	}
	return false
}

func (s JobState) String() string {
	switch s {
	case JobStateSubmitted:
		return "SUBMITTED"
	case JobStateRunning:
		return "RUNNING"
	case JobStateSucceeded:
		return "SUCCEEDED"
	case JobStateFailed:
		return "FAILED"
	case JobStateCancelled:
		return "CANCELLED"
	case JobStateExpired:
		return "EXPIRED"
	}
	return "UNKNOWN"
}

// BatchEntry records one submitted item of a batch job: the catalog index it
// must land at after download, and the program name for auditability.
type BatchEntry struct {
	Index       int    `json:"index"`
	ProgramName string `json:"program_name"`
}

// BatchJob identifies one outstanding bulk-embedding request. The descriptor
// is persisted on submission so status checks and the download step can run
// as separate process invocations.
type BatchJob struct {
	JobID       string       `json:"job_id"`
	Model       string       `json:"model"`
	SubmittedAt time.Time    `json:"submitted_at"`
	GrantCount  int          `json:"grant_count"`
	Entries     []BatchEntry `json:"grants"`
}

// MatchResult is one ranked candidate, formatted for display.
// Derived per request, never persisted.
type MatchResult struct {
	ProgramName    string
	URL            string
	Description    string // truncated to 200 chars with an ellipsis marker
	FundingDisplay string
	Deadline       string
	Source         string
	Score          float32 // composite relevance in [0,1]
}

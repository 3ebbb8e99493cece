package roadmap

import "time"

// WeekStatus is the participant-facing state of one roadmap week, derived
// from that week's latest checkpoint.
type WeekStatus string

const (
	StatusPending     WeekStatus = "Pending"      // no submission yet
	StatusUnderReview WeekStatus = "Under Review" // submitted, not approved
	StatusCompleted   WeekStatus = "Completed"    // approved
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Week struct {
	ID    int    `json:"id"` // week number, 1-based
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Roadmap is an ordered curriculum of weeks scoped to an event and, for
// mentorship events, a domain. Content is admin-authored and read-only for
// participants.
type Roadmap struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Domain    string    `json:"domain"`
	Weeks     []Week    `json:"weeks"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Checkpoint is one weekly submission against a roadmap week. Re-submission
// appends a new row; reads keep the latest row per week.
type Checkpoint struct {
	ID                string    `json:"id"`
	RegistrationID    string    `json:"registration_id"`
	WeekNumber        int       `json:"week_number"`
	SubmissionContent string    `json:"submission_content"`
	MentorFeedback    string    `json:"mentor_feedback,omitempty"`
	IsApproved        *bool     `json:"is_approved"` // nil = pending review
	CreatedAt         time.Time `json:"created_at"`  // UTC
}

func (cp *Checkpoint) Status() WeekStatus {
	if cp == nil {
		return StatusPending
	}
	if cp.IsApproved != nil && *cp.IsApproved {
		return StatusCompleted
	}
	return StatusUnderReview
}

// ReviewedCheckpoint is the projection returned by a mentor review, joined
// with the participant and event so the caller can notify them.
type ReviewedCheckpoint struct {
	Checkpoint
	ParticipantName  string `json:"participant_name"`
	ParticipantEmail string `json:"participant_email"`
	EventTitle       string `json:"event_title"`
}

// ViewState tells the roadmap page which of its three renderings applies.
type ViewState string

const (
	StatePendingAssignment ViewState = "pending_assignment"
	StateNotPublished      ViewState = "not_published"
	StatePublished         ViewState = "published"
)

// WeekView annotates one roadmap week with the viewer's submission state.
type WeekView struct {
	Week
	Status     WeekStatus  `json:"status"`
	Submission *Checkpoint `json:"submission,omitempty"`
}

// View is the resolved roadmap page for one (event, viewer) pair.
type View struct {
	EventID          string     `json:"event_id"`
	EventTitle       string     `json:"event_title"`
	EventSlug        string     `json:"event_slug"`
	State            ViewState  `json:"state"`
	DomainPriorities []string   `json:"domain_priorities,omitempty"` // pending-assignment echo
	Domain           string     `json:"domain,omitempty"`
	Weeks            []WeekView `json:"weeks,omitempty"`
}

// LatestByWeek indexes checkpoints by week number, latest submission winning.
func LatestByWeek(cps []Checkpoint) map[int]Checkpoint {
	latest := make(map[int]Checkpoint, len(cps))
	for _, cp := range cps {
		if prev, ok := latest[cp.WeekNumber]; !ok || cp.CreatedAt.After(prev.CreatedAt) {
			latest[cp.WeekNumber] = cp
		}
	}
	return latest
}

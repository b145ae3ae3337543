package entities

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrAttachmentNotFound  = errors.New("attachment not found on schedule")
	ErrInvalidScheduleDate = errors.New("invalid schedule date")
	ErrDraftNotFound       = errors.New("no edit session open for schedule")
	ErrCommitInFlight      = errors.New("commit already in flight for this draft")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrPortfolioNotFound   = errors.New("portfolio not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidEntry        = errors.New("invalid portfolio entry")
)

// DateLayout is the calendar-date wire format used by the backend for
// schedule dates, portfolio periods and job posting dates.
const DateLayout = "2006-01-02"

// Schedule represents one tracked application event tied to a company.
// The backend is the system of record; instances held here are snapshots
// of the most recent fetch.
type Schedule struct {
	ScheduleID   int64            `json:"scheduleId"`
	CompanyID    int64            `json:"companyId"`
	CompanyName  string           `json:"companyName"`
	Title        string           `json:"title"`
	ScheduleDate string           `json:"scheduleDate"` // date-only, DateLayout
	Details      []ScheduleDetail `json:"details"`
	Files        []ScheduleFile   `json:"files"`
	CreatedDate  time.Time        `json:"createdDate"`
	UpdatedDate  time.Time        `json:"updatedDate"`
}

// ScheduleDetail is a sub-item of a schedule (e.g. "bring portfolio",
// "coding test 14:00"). A schedule with zero details is valid.
type ScheduleDetail struct {
	DetailID int64  `json:"detailId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// ScheduleFile is a server-side attachment reference.
type ScheduleFile struct {
	FileID       int64  `json:"fileId"`
	OriginalName string `json:"originalName"`
	FilePath     string `json:"filePath"`
}

// DateAtMidnight parses the schedule's calendar date at local midnight.
func (s *Schedule) DateAtMidnight() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s.ScheduleDate, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: schedule %d date %q", ErrInvalidScheduleDate, s.ScheduleID, s.ScheduleDate)
	}
	return t, nil
}

// HasFile reports whether the schedule carries an attachment with the
// given server-assigned id.
func (s *Schedule) HasFile(fileID int64) bool {
	for _, f := range s.Files {
		if f.FileID == fileID {
			return true
		}
	}
	return false
}

// Clone deep-copies the schedule, including its detail and file slices.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	out := *s
	out.Details = make([]ScheduleDetail, len(s.Details))
	copy(out.Details, s.Details)
	out.Files = make([]ScheduleFile, len(s.Files))
	copy(out.Files, s.Files)
	return &out
}

// DateGroup is one calendar-date bucket of a derived collection view.
type DateGroup struct {
	Date      string      `json:"date"`
	Schedules []*Schedule `json:"schedules"`
}

// CollectionView is a derived, read-only grouping of schedules for display:
// upcoming dates first in ascending order, then past dates in ascending
// order, records sharing a date collapsed into one group. It is recomputed
// from the canonical collection and never persisted.
type CollectionView struct {
	Groups []DateGroup `json:"groups"`
}

// Records flattens the view back into a single sequence, preserving group
// iteration order.
func (v CollectionView) Records() []*Schedule {
	var out []*Schedule
	for _, g := range v.Groups {
		out = append(out, g.Schedules...)
	}
	return out
}

// Len returns the total number of schedules across all groups.
func (v CollectionView) Len() int {
	n := 0
	for _, g := range v.Groups {
		n += len(g.Schedules)
	}
	return n
}

// Job is one job posting returned by the backend's posting search.
type Job struct {
	JobID            int64  `json:"jobId"`
	RequestNo        string `json:"requestNo"`
	CompanyName      string `json:"companyName"`
	Title            string `json:"title"`
	WorkAddress      string `json:"workAddress"`
	JobCodeName      string `json:"jobCodeName"`
	AcademicName     string `json:"academicName"`
	CareerName       string `json:"careerName"`
	RegistrationDate string `json:"registrationDate"`
	ExpirationDate   string `json:"expirationDate"`
	DetailURL        string `json:"detailUrl"`
}

// JobPage is the backend's paginated posting response.
type JobPage struct {
	Content          []Job `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// EntryKind discriminates the portfolio entry variants. The backend models
// all section items with one optional-field shape; here each entry carries
// an explicit kind instead of being classified by which fields are set.
type EntryKind string

const (
	EntryKindEducation   EntryKind = "education"
	EntryKindExperience  EntryKind = "experience"
	EntryKindActivity    EntryKind = "activity"
	EntryKindLink        EntryKind = "link"
	EntryKindCertificate EntryKind = "certificate"
)

// IsValid reports whether the kind is one of the known variants.
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindEducation, EntryKindExperience, EntryKindActivity, EntryKindLink, EntryKindCertificate:
		return true
	default:
		return false
	}
}

// PortfolioEntry is one item of a portfolio section, as a tagged union.
// Which fields are meaningful depends on Kind:
//
//	education/experience/activity: InstitutionName, StartDate, EndDate
//	link:                          Title, URL
//	certificate:                   Title, AcquireDate
type PortfolioEntry struct {
	Kind            EntryKind `json:"kind"`
	InstitutionName string    `json:"institutionName,omitempty"`
	StartDate       string    `json:"startDate,omitempty"`
	EndDate         string    `json:"endDate,omitempty"`
	Title           string    `json:"title,omitempty"`
	URL             string    `json:"url,omitempty"`
	AcquireDate     string    `json:"acquireDate,omitempty"`
}

// Validate checks that the fields required by the entry's kind are present
// and that no field belonging to a different variant is set.
func (e PortfolioEntry) Validate() error {
	switch e.Kind {
	case EntryKindEducation, EntryKindExperience, EntryKindActivity:
		if e.InstitutionName == "" {
			return fmt.Errorf("%w: %s entry missing institution name", ErrInvalidEntry, e.Kind)
		}
		if e.Title != "" || e.URL != "" || e.AcquireDate != "" {
			return fmt.Errorf("%w: %s entry carries fields of another variant", ErrInvalidEntry, e.Kind)
		}
	case EntryKindLink:
		if e.Title == "" || e.URL == "" {
			return fmt.Errorf("%w: link entry requires title and url", ErrInvalidEntry)
		}
		if e.InstitutionName != "" || e.AcquireDate != "" {
			return fmt.Errorf("%w: link entry carries fields of another variant", ErrInvalidEntry)
		}
	case EntryKindCertificate:
		if e.Title == "" || e.AcquireDate == "" {
			return fmt.Errorf("%w: certificate entry requires title and acquire date", ErrInvalidEntry)
		}
		if e.InstitutionName != "" || e.URL != "" {
			return fmt.Errorf("%w: certificate entry carries fields of another variant", ErrInvalidEntry)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, e.Kind)
	}
	return nil
}

// PortfolioOwner identifies the user a portfolio belongs to.
type PortfolioOwner struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Portfolio is the user's profile document: contact info plus the five
// entry sections, flattened into tagged entries.
type Portfolio struct {
	ID              int64            `json:"id"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	ProfileImageURL string           `json:"profileImageUrl"`
	Owner           PortfolioOwner   `json:"user"`
	Entries         []PortfolioEntry `json:"entries"`
}

// EntriesOf returns the entries of one kind, in portfolio order.
func (p *Portfolio) EntriesOf(kind EntryKind) []PortfolioEntry {
	var out []PortfolioEntry
	for _, e := range p.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// PortfolioSummary is the backend's response to portfolio create/update.
type PortfolioSummary struct {
	PortfolioID int64     `json:"portfolioId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// Project is one portfolio project with an optional image and link.
type Project struct {
	ProjectID   int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	LinkURL     string `json:"linkUrl"`
	ImageURL    string `json:"imageUrl"`
}

// Session holds the tokens issued by the backend on login. It is the only
// process-wide authentication state; every outgoing request reads the
// access token through the session store rather than ad hoc.
type Session struct {
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

package ports

import (
	"context"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
)

// ScheduleAPI is the persistence collaborator surface for schedules. The
// backend is the system of record; every mutation returns (or is followed
// by a re-fetch of) the authoritative server state.
type ScheduleAPI interface {
	List(ctx context.Context, filter ScheduleFilter) ([]*entities.Schedule, error)
	Get(ctx context.Context, id int64) (*entities.Schedule, error)
	Create(ctx context.Context, req CreateScheduleRequest, files []FileUpload) (*entities.Schedule, error)
	Update(ctx context.Context, id int64, req UpdateScheduleRequest, files []FileUpload) (*entities.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

// JobAPI exposes the backend's job posting search.
type JobAPI interface {
	Search(ctx context.Context, filter JobFilter) (*entities.JobPage, error)
}

// PortfolioAPI covers the portfolio document and its projects.
type PortfolioAPI interface {
	Get(ctx context.Context) (*entities.Portfolio, error)
	Create(ctx context.Context, req PortfolioRequest, profileImage *FileUpload) (*entities.PortfolioSummary, error)
	Update(ctx context.Context, req PortfolioRequest, profileImage *FileUpload) (*entities.PortfolioSummary, error)

	ListProjects(ctx context.Context) ([]*entities.Project, error)
	CreateProject(ctx context.Context, req ProjectRequest, image *FileUpload) (*entities.Project, error)
	UpdateProject(ctx context.Context, id int64, req ProjectRequest, image *FileUpload) (*entities.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// UserAPI covers account and session endpoints.
type UserAPI interface {
	Login(ctx context.Context, req LoginRequest) (*entities.Session, error)
	Join(ctx context.Context, req JoinRequest) error
	SendEmailCode(ctx context.Context, email string) error
	CheckEmailCode(ctx context.Context, email, code string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// FileUpload is a locally staged binary pending upload. StagingKey is a
// client-assigned identifier so a staged file can be removed from a draft
// before commit.
type FileUpload struct {
	StagingKey string `json:"stagingKey"`
	Name       string `json:"name"`
	Content    []byte `json:"-"`
}

// Request and filter types

type ScheduleFilter struct {
	Page int    `query:"page" validate:"gte=0"`
	Size int    `query:"size" validate:"gte=0,lte=500"`
	Sort string `query:"sort"`
}

type ScheduleDetailRequest struct {
	DetailID *int64 `json:"detailId,omitempty"`
	Title    string `json:"detailTitle" validate:"required"`
	Content  string `json:"detailContent"`
}

type CreateScheduleRequest struct {
	CompanyName  string                  `json:"companyName" validate:"required"`
	Title        string                  `json:"title" validate:"required"`
	ScheduleDate string                  `json:"scheduleDate" validate:"required,datetime=2006-01-02"`
	Details      []ScheduleDetailRequest `json:"details" validate:"dive"`
}

// UpdateScheduleRequest replaces the whole record; there is no field-level
// patch. FilesToDelete travels inside the dto part of the multipart body.
type UpdateScheduleRequest struct {
	CompanyName   string                  `json:"companyName" validate:"required"`
	Title         string                  `json:"title" validate:"required"`
	ScheduleDate  string                  `json:"scheduleDate" validate:"required,datetime=2006-01-02"`
	Details       []ScheduleDetailRequest `json:"details" validate:"dive"`
	FilesToDelete []int64                 `json:"filesToDelete"`
}

type JobFilter struct {
	Page    int    `query:"page" validate:"gte=0"`
	Size    int    `query:"size" validate:"gte=0,lte=200"`
	Sort    string `query:"sort"`
	Type    string `query:"type"`
	Status  string `query:"status"`
	Keyword string `query:"keyword"`
}

type PeriodEntryRequest struct {
	InstitutionName string `json:"institutionName" validate:"required"`
	StartDate       string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type LinkRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
}

type CertificateRequest struct {
	Title       string `json:"title" validate:"required"`
	AcquireDate string `json:"acquireDate" validate:"required,datetime=2006-01-02"`
}

type PortfolioRequest struct {
	Phone        string               `json:"phone" validate:"required"`
	Address      string               `json:"address"`
	Educations   []PeriodEntryRequest `json:"educations" validate:"dive"`
	Experiences  []PeriodEntryRequest `json:"experiences" validate:"dive"`
	Activities   []PeriodEntryRequest `json:"activities" validate:"dive"`
	Links        []LinkRequest        `json:"links" validate:"dive"`
	Certificates []CertificateRequest `json:"certificates" validate:"dive"`
}

type ProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	LinkURL     string `json:"linkUrl" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type JoinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// PortfolioClient implements ports.PortfolioAPI. The backend keeps
// portfolio entries in five separate section lists sharing one item
// shape; this adapter folds them into the tagged entry union so the
// rest of the codebase never reasons about field presence.
type PortfolioClient struct {
	client *Client
}

func NewPortfolioClient(client *Client) *PortfolioClient {
	return &PortfolioClient{client: client}
}

type wireEntry struct {
	InstitutionName string `json:"institutionName"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	AcquireDate     string `json:"acquireDate"`
}

type wirePortfolio struct {
	ID              int64                   `json:"id"`
	Phone           string                  `json:"phone"`
	Address         string                  `json:"address"`
	ProfileImageURL string                  `json:"profileImageUrl"`
	Owner           entities.PortfolioOwner `json:"user"`
	Educations      []wireEntry             `json:"educations"`
	Experiences     []wireEntry             `json:"experiences"`
	Activities      []wireEntry             `json:"activities"`
	Links           []wireEntry             `json:"links"`
	Certificates    []wireEntry             `json:"certificates"`
}

func tagEntries(kind entities.EntryKind, section []wireEntry) []entities.PortfolioEntry {
	out := make([]entities.PortfolioEntry, 0, len(section))
	for _, e := range section {
		entry := entities.PortfolioEntry{Kind: kind}
		switch kind {
		case entities.EntryKindLink:
			entry.Title = e.Title
			entry.URL = e.URL
		case entities.EntryKindCertificate:
			entry.Title = e.Title
			entry.AcquireDate = e.AcquireDate
		default:
			entry.InstitutionName = e.InstitutionName
			entry.StartDate = e.StartDate
			entry.EndDate = e.EndDate
		}
		out = append(out, entry)
	}
	return out
}

func (w wirePortfolio) toEntity() *entities.Portfolio {
	p := &entities.Portfolio{
		ID:              w.ID,
		Phone:           w.Phone,
		Address:         w.Address,
		ProfileImageURL: w.ProfileImageURL,
		Owner:           w.Owner,
	}
	p.Entries = append(p.Entries, tagEntries(entities.EntryKindEducation, w.Educations)...)
	p.Entries = append(p.Entries, tagEntries(entities.EntryKindExperience, w.Experiences)...)
	p.Entries = append(p.Entries, tagEntries(entities.EntryKindActivity, w.Activities)...)
	p.Entries = append(p.Entries, tagEntries(entities.EntryKindLink, w.Links)...)
	p.Entries = append(p.Entries, tagEntries(entities.EntryKindCertificate, w.Certificates)...)
	return p
}

func (c *PortfolioClient) Get(ctx context.Context) (*entities.Portfolio, error) {
	var wire wirePortfolio
	if err := c.client.getJSON(ctx, "/portfolio", nil, &wire); err != nil {
		var remoteErr *Error
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %v", entities.ErrPortfolioNotFound, err)
		}
		return nil, fmt.Errorf("failed to fetch portfolio: %w", err)
	}
	return wire.toEntity(), nil
}

func (c *PortfolioClient) Create(ctx context.Context, req ports.PortfolioRequest, profileImage *ports.FileUpload) (*entities.PortfolioSummary, error) {
	return c.save(ctx, http.MethodPost, req, profileImage)
}

func (c *PortfolioClient) Update(ctx context.Context, req ports.PortfolioRequest, profileImage *ports.FileUpload) (*entities.PortfolioSummary, error) {
	return c.save(ctx, http.MethodPut, req, profileImage)
}

func (c *PortfolioClient) save(ctx context.Context, method string, req ports.PortfolioRequest, profileImage *ports.FileUpload) (*entities.PortfolioSummary, error) {
	var parts []filePart
	if profileImage != nil {
		parts = append(parts, filePart{field: "profileImage", name: profileImage.Name, content: profileImage.Content})
	}

	var summary entities.PortfolioSummary
	if err := c.client.sendMultipart(ctx, method, "/portfolio", req, parts, &summary); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return &summary, nil
}

func (c *PortfolioClient) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	var projects []*entities.Project
	if err := c.client.getJSON(ctx, "/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (c *PortfolioClient) CreateProject(ctx context.Context, req ports.ProjectRequest, image *ports.FileUpload) (*entities.Project, error) {
	var parts []filePart
	if image != nil {
		parts = append(parts, filePart{field: "image", name: image.Name, content: image.Content})
	}

	var project entities.Project
	if err := c.client.sendMultipart(ctx, http.MethodPost, "/projects", req, parts, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (c *PortfolioClient) UpdateProject(ctx context.Context, id int64, req ports.ProjectRequest, image *ports.FileUpload) (*entities.Project, error) {
	var parts []filePart
	if image != nil {
		parts = append(parts, filePart{field: "image", name: image.Name, content: image.Content})
	}

	var project entities.Project
	path := fmt.Sprintf("/projects/%d", id)
	if err := c.client.sendMultipart(ctx, http.MethodPut, path, req, parts, &project); err != nil {
		var remoteErr *Error
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: project %d", entities.ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	return &project, nil
}

func (c *PortfolioClient) DeleteProject(ctx context.Context, id int64) error {
	req, err := c.client.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil, "")
	if err != nil {
		return err
	}
	if _, _, err := c.client.roundTrip(req); err != nil {
		var remoteErr *Error
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: project %d", entities.ErrProjectNotFound, id)
		}
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return nil
}

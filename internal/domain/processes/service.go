package processes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Code       string
	Object     string
	Modality   string
	Status     string
	Department string
	Notes      string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Process, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Process{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Code) == "" {
		return Process{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Object) == "" {
		return Process{}, ErrInvalidInput
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusDraft
	}

	now := s.now()
	p := Process{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Code:        strings.TrimSpace(in.Code),
		Object:      strings.TrimSpace(in.Object),
		Modality:    Modality(strings.TrimSpace(in.Modality)),
		Status:      status,
		Department:  strings.TrimSpace(in.Department),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Process{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Process, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Process, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// OwnerOf expone el ownerUserID de un proceso. Se usa desde otros
// módulos para chequear permisos sin ciclos de imports.
func (s *Service) OwnerOf(ctx context.Context, processID string) (string, error) {
	p, err := s.GetByID(ctx, processID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

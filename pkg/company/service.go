package company

import (
	"context"
	"fmt"

	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/user"
)

type Service struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *Service {
	return &Service{
		repo:  repo,
		bus:   bus,
		clock: clock,
	}
}

func (s *Service) AddCompany(ctx context.Context, company Company) (*Company, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if company.Status == "" {
		company.Status = StatusLead
	}
	company.CreatedAt = s.clock.Now()

	id, err := s.repo.StoreCompany(ctx, userId, company)
	if err != nil {
		return nil, fmt.Errorf("failed to store company: %w", err)
	}
	company.Id = id

	// Best effort notification; a failed subscriber must not fail the create.
	_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeCompanyCreated, event_bus.CompanyCreated{
		Id:   company.Id,
		Name: company.Name,
	}))

	return &company, nil
}

func (s *Service) GetCompany(ctx context.Context, id int) (Company, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Company{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCompany(ctx, userId, id)
}

func (s *Service) GetCompanies(ctx context.Context) ([]Company, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCompanies(ctx, userId)
}

func (s *Service) ModifyCompany(ctx context.Context, company Company) (*Company, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.repo.UpdateCompany(ctx, userId, company); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetCompany(ctx, userId, company.Id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteCompany(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteCompany(ctx, userId, id)
}

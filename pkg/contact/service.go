package contact

import (
	"context"
	"fmt"

	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/user"
)

type Service struct {
	repo            Repository
	companyProvider company.ProviderFunc
}

func NewService(repo Repository, companyProvider company.ProviderFunc) *Service {
	return &Service{
		repo:            repo,
		companyProvider: companyProvider,
	}
}

func (s *Service) AddContact(ctx context.Context, contact Contact) (*Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	// The company must exist and belong to the current user.
	if _, err := s.companyProvider(ctx, contact.CompanyId); err != nil {
		return nil, fmt.Errorf("failed to resolve company %d: %w", contact.CompanyId, err)
	}

	id, err := s.repo.StoreContact(ctx, userId, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to store contact: %w", err)
	}
	contact.Id = id
	return &contact, nil
}

func (s *Service) GetContactsByCompany(ctx context.Context, companyId int) ([]Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetContactsByCompany(ctx, userId, companyId)
}

func (s *Service) CountContacts(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.CountContacts(ctx, userId)
}

func (s *Service) ModifyContact(ctx context.Context, contact Contact) (*Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.repo.UpdateContact(ctx, userId, contact); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetContact(ctx, userId, contact.Id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteContact(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteContact(ctx, userId, id)
}

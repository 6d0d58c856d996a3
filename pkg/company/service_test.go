package company

import (
	"context"
	"testing"
	"time"

	"github.com/prospectcrm/prospect/internal/event_bus"
	"github.com/prospectcrm/prospect/internal/utils"
	"github.com/prospectcrm/prospect/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*Service, *event_bus.EventBus, context.Context) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)}
	service := NewService(NewRepositoryStub(), bus, clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, bus, ctx
}

func TestService_AddCompany(t *testing.T) {
	service, bus, ctx := setupServiceTest(t)

	var published []event_bus.CompanyCreated
	event_bus.SubscribeTyped[event_bus.CompanyCreated](bus, event_bus.TypeCompanyCreated,
		func(e event_bus.EventT[event_bus.CompanyCreated]) error {
			published = append(published, e.Data)
			return nil
		})

	created, err := service.AddCompany(ctx, Company{
		Name:     "Acme Minerals",
		Industry: "Copper",
		Location: "Atacama",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.Equal(t, StatusLead, created.Status, "status defaults to lead")
	assert.Equal(t, time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC), created.CreatedAt)

	require.Len(t, published, 1)
	assert.Equal(t, "Acme Minerals", published[0].Name)
}

func TestService_AddCompany_NoUser(t *testing.T) {
	service, _, _ := setupServiceTest(t)

	_, err := service.AddCompany(context.Background(), Company{Name: "Orphan Ltd"})
	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestService_GetCompanies_UserIsolation(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	_, err := service.AddCompany(ctx, Company{Name: "Mine A"})
	require.NoError(t, err)
	_, err = service.AddCompany(ctx, Company{Name: "Mine B"})
	require.NoError(t, err)

	otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
	_, err = service.AddCompany(otherCtx, Company{Name: "Other Mine"})
	require.NoError(t, err)

	companies, err := service.GetCompanies(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 2)

	otherCompanies, err := service.GetCompanies(otherCtx)
	require.NoError(t, err)
	assert.Len(t, otherCompanies, 1)
	assert.Equal(t, "Other Mine", otherCompanies[0].Name)
}

func TestService_ModifyCompany(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.AddCompany(ctx, Company{Name: "Before", Status: StatusActive})
	require.NoError(t, err)

	created.Name = "After"
	created.Status = StatusDormant
	updated, err := service.ModifyCompany(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, StatusDormant, updated.Status)
}

func TestService_DeleteCompany(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.AddCompany(ctx, Company{Name: "To remove"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCompany(ctx, created.Id))

	_, err = service.GetCompany(ctx, created.Id)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	err = service.DeleteCompany(ctx, created.Id)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

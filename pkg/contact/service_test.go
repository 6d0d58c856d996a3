package contact

import (
	"context"
	"testing"

	"github.com/prospectcrm/prospect/pkg/company"
	"github.com/prospectcrm/prospect/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownCompanies = map[int]company.Company{
	1: {Id: 1, Name: "Acme Minerals"},
}

func companyProvider(ctx context.Context, id int) (company.Company, error) {
	c, ok := knownCompanies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func setupServiceTest(t *testing.T) (*Service, context.Context) {
	service := NewService(NewRepositoryStub(), companyProvider)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, ctx
}

func TestService_AddContact(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.AddContact(ctx, Contact{
		CompanyId: 1,
		FirstName: "Maria",
		LastName:  "Duarte",
		Email:     "maria@acme.example",
		Role:      "Chief Geologist",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.Id)

	contacts, err := service.GetContactsByCompany(ctx, 1)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Duarte", contacts[0].LastName)
}

func TestService_AddContact_UnknownCompany(t *testing.T) {
	service, ctx := setupServiceTest(t)

	_, err := service.AddContact(ctx, Contact{CompanyId: 99, FirstName: "Nobody"})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestService_ModifyContact(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.AddContact(ctx, Contact{CompanyId: 1, FirstName: "Jan", LastName: "Kowalski"})
	require.NoError(t, err)

	created.Phone = "+48 600 000 000"
	updated, err := service.ModifyContact(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "+48 600 000 000", updated.Phone)
}

func TestService_DeleteContact(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.AddContact(ctx, Contact{CompanyId: 1, FirstName: "Temp"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteContact(ctx, created.Id))
	err = service.DeleteContact(ctx, created.Id)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestService_UserIsolation(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.AddContact(ctx, Contact{CompanyId: 1, FirstName: "Mine"})
	require.NoError(t, err)

	otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
	err = service.DeleteContact(otherCtx, created.Id)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

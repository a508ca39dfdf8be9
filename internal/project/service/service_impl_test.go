package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/carbonconstruct/ledger/internal/project/domain"
	"github.com/carbonconstruct/ledger/internal/project/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Project{}))

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
}

func strPtr(v string) *string { return &v }

func TestCreateAndGetProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProjectRequest{
		ProjectID:   "P-2025-001",
		ProjectName: "Riverside Apartments",
		Postcode:    strPtr("2000"),
		State:       strPtr("nsw"),
		NCCVolume:   strPtr("Volume One"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.State)
	assert.Equal(t, "NSW", *created.State)

	got, err := svc.Get(ctx, "P-2025-001")
	require.NoError(t, err)
	assert.Equal(t, "Riverside Apartments", got.ProjectName)
	require.NotNil(t, got.Postcode)
	assert.Equal(t, "2000", *got.Postcode)
}

func TestCreateDuplicateProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := domain.CreateProjectRequest{ProjectID: "P-1", ProjectName: "Site A"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrProjectExists)
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProjectRequest{ProjectName: "No ID"})
	assert.ErrorIs(t, err, domain.ErrInvalidProjectID)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{ProjectID: "P-1", ProjectName: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidProjectName)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{
		ProjectID:   "P-1",
		ProjectName: "Bad state",
		State:       strPtr("ZZ"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestGetMissingProject(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestListProjectsFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seed := []domain.CreateProjectRequest{
		{ProjectID: "P-1", ProjectName: "Sydney Tower", State: strPtr("NSW"), NCCVolume: strPtr("Volume One")},
		{ProjectID: "P-2", ProjectName: "Melbourne Depot", State: strPtr("VIC"), NCCVolume: strPtr("Volume Two")},
		{ProjectID: "P-3", ProjectName: "Newcastle Yard", State: strPtr("NSW"), NCCVolume: strPtr("Volume Two")},
	}
	for _, req := range seed {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, domain.ListProjectRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	nsw, err := svc.List(ctx, domain.ListProjectRequest{State: "nsw"})
	require.NoError(t, err)
	require.Len(t, nsw, 2)
	for _, p := range nsw {
		assert.Equal(t, "NSW", *p.State)
	}

	volTwoNSW, err := svc.List(ctx, domain.ListProjectRequest{State: "NSW", NCCVolume: "Volume Two"})
	require.NoError(t, err)
	require.Len(t, volTwoNSW, 1)
	assert.Equal(t, "P-3", volTwoNSW[0].ProjectID)
}

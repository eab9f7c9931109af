package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

func TestProviderList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	providers, err := f.providerSvc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, providers, 1)

	p := providers[0]
	assert.Equal(t, testProviderProfile, p.ID)
	assert.Equal(t, "Sipho Dlamini", p.Name)
	assert.Equal(t, "Plumbing", p.Skill)
	assert.Equal(t, "Soweto", p.Suburb)
	require.NotNil(t, p.HourlyRateCents)
	assert.Equal(t, int64(9000), *p.HourlyRateCents)
	assert.True(t, p.Verified)

	// No reviews yet, so no rating is reported.
	assert.Nil(t, p.Rating)
	assert.Zero(t, p.RatingCount)
}

func TestProviderGetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.providerSvc.GetByID(ctx, testProviderProfile)
	require.NoError(t, err)
	assert.Equal(t, testProviderUserID, p.UserID)

	_, err = f.providerSvc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProviderUpsertForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a profile", func(t *testing.T) {
		f := newFixture(t)
		f.users.users["user-provider-2"] = model.User{
			UserID: "user-provider-2", Name: "Lindiwe Nkosi", Role: model.RoleProvider,
		}

		rate := int64(12000)
		p, err := f.providerSvc.UpsertForUser(ctx, "user-provider-2", dto.UpdateProviderProfileRequest{
			Skill:           "Electrical",
			Suburb:          "Sandton",
			HourlyRateCents: &rate,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Electrical", p.Skill)
		assert.Equal(t, "Sandton", p.Suburb)
		require.NotNil(t, p.HourlyRateCents)
		assert.Equal(t, rate, *p.HourlyRateCents)
		assert.False(t, p.Verified)
	})

	t.Run("creation needs skill and suburb", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.providerSvc.UpsertForUser(ctx, "user-provider-2", dto.UpdateProviderProfileRequest{Skill: "Electrical"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("update merges over the existing profile", func(t *testing.T) {
		f := newFixture(t)

		bio := "Twenty years on the tools."
		p, err := f.providerSvc.UpsertForUser(ctx, testProviderUserID, dto.UpdateProviderProfileRequest{Bio: bio})
		require.NoError(t, err)

		assert.Equal(t, testProviderProfile, p.ID)
		assert.Equal(t, "Plumbing", p.Skill)
		assert.Equal(t, "Soweto", p.Suburb)
		require.NotNil(t, p.Bio)
		assert.Equal(t, bio, *p.Bio)
		require.NotNil(t, p.HourlyRateCents)
		assert.Equal(t, int64(9000), *p.HourlyRateCents)
	})

	t.Run("rate change flows into new jobs", func(t *testing.T) {
		f := newFixture(t)

		rate := int64(15000)
		_, err := f.providerSvc.UpsertForUser(ctx, testProviderUserID, dto.UpdateProviderProfileRequest{HourlyRateCents: &rate})
		require.NoError(t, err)

		job, err := f.jobSvc.CreateJob(ctx, testCustomerID, dto.CreateJobRequest{ProviderID: testProviderProfile})
		require.NoError(t, err)
		assert.Equal(t, rate, job.PriceCents)
	})
}

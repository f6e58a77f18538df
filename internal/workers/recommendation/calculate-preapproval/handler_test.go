// internal/workers/recommendation/calculate-preapproval/handler_test.go
package calculatepreapproval

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	profile *models.UserProfile
	err     error
}

func (s *stubProfiles) Get(_ context.Context, _ string) (*models.UserProfile, error) {
	return s.profile, s.err
}

type stubCatalog struct {
	cards []models.CreditCard
	err   error
}

func (s *stubCatalog) GetAll(_ context.Context) ([]models.CreditCard, error) {
	return s.cards, s.err
}

func newTestHandler(profiles ProfileSource, catalog CatalogSource) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, profiles, catalog, logger.NewNoOpLogger())
}

func strongProfile() *models.UserProfile {
	return &models.UserProfile{
		CreditScore:      "750",
		AnnualIncome:     "$80,000",
		EmploymentStatus: "Full-time",
	}
}

func TestExecute_WithInlineProfileAndCard(t *testing.T) {
	h := newTestHandler(&stubProfiles{}, &stubCatalog{})

	output, err := h.Execute(context.Background(), &Input{
		UserProfile: strongProfile(),
		Card:        &models.CreditCard{ID: "card-1", Name: "Everyday Cash", Category: "cashback"},
	})
	require.NoError(t, err)

	assert.Equal(t, "card-1", output.CardID)
	assert.GreaterOrEqual(t, output.ApprovalProbability, 10)
	assert.LessOrEqual(t, output.ApprovalProbability, 95)
	assert.Equal(t, models.ConfidenceHigh, output.Confidence)
	assert.NotEmpty(t, output.Recommendation)
	assert.NotEmpty(t, output.Factors.Positive)
}

func TestExecute_ResolvesCardFromCatalog(t *testing.T) {
	catalog := &stubCatalog{cards: []models.CreditCard{
		{ID: "card-1", Name: "Everyday Cash"},
		{ID: "card-2", Name: "Voyager Elite", Category: "premium", AnnualFee: 550, HasAnnualFee: true},
	}}
	h := newTestHandler(&stubProfiles{}, catalog)

	output, err := h.Execute(context.Background(), &Input{
		UserProfile: strongProfile(),
		CardID:      "card-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "card-2", output.CardID)
}

func TestExecute_ResolvesProfileFromStore(t *testing.T) {
	profiles := &stubProfiles{profile: strongProfile()}
	h := newTestHandler(profiles, &stubCatalog{})

	output, err := h.Execute(context.Background(), &Input{
		UserID: "user-1",
		Card:   &models.CreditCard{ID: "card-1", Name: "Everyday Cash"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ConfidenceHigh, output.Confidence)
}

func TestExecute_UnknownCard(t *testing.T) {
	h := newTestHandler(&stubProfiles{}, &stubCatalog{cards: []models.CreditCard{{ID: "card-1"}}})

	_, err := h.Execute(context.Background(), &Input{
		UserProfile: strongProfile(),
		CardID:      "missing",
	})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestExecute_NoProfileAnywhere(t *testing.T) {
	h := newTestHandler(&stubProfiles{err: errors.New("not found")}, &stubCatalog{})

	_, err := h.Execute(context.Background(), &Input{
		Card: &models.CreditCard{ID: "card-1"},
	})
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestExecute_NoCardReference(t *testing.T) {
	h := newTestHandler(&stubProfiles{}, &stubCatalog{})

	_, err := h.Execute(context.Background(), &Input{UserProfile: strongProfile()})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestExecute_CatalogFailure(t *testing.T) {
	h := newTestHandler(&stubProfiles{}, &stubCatalog{err: errors.New("CATALOG_QUERY_FAILED")})

	_, err := h.Execute(context.Background(), &Input{
		UserProfile: strongProfile(),
		CardID:      "card-1",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCardNotFound)
}

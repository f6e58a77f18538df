// internal/workers/recommendation/analyze-spending/handler_test.go
package analyzespending

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
	called  bool
}

func (s *stubProfiles) Get(_ context.Context, _ string) (*models.UserProfile, error) {
	s.called = true
	return s.profile, s.err
}

func newTestHandler(profiles ProfileSource) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, profiles, logger.NewNoOpLogger())
}

func TestExecute_AnalyzesInlinePurchases(t *testing.T) {
	profiles := &stubProfiles{}
	h := newTestHandler(profiles)

	output, err := h.Execute(context.Background(), &Input{
		Purchases: []models.Purchase{
			{Category: "travel", Amount: 600},
			{Category: "restaurants", Amount: 400},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(1000), output.SpendingProfile.TotalSpent)
	assert.Equal(t, "travel", output.SpendingProfile.TopCategory.Category)
	assert.Contains(t, output.Insights,
		"High travel spending detected. Travel rewards cards could maximize your benefits.")
	assert.False(t, profiles.called)
}

func TestExecute_LoadsPurchasesFromProfile(t *testing.T) {
	profiles := &stubProfiles{profile: &models.UserProfile{
		Purchases: []models.Purchase{{Category: "gas", Amount: 100}},
	}}
	h := newTestHandler(profiles)

	output, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, float64(100), output.SpendingProfile.TotalSpent)
	assert.True(t, profiles.called)
}

func TestExecute_NoDataProducesEmptyProfileInsight(t *testing.T) {
	h := newTestHandler(&stubProfiles{err: errors.New("not found")})

	output, err := h.Execute(context.Background(), &Input{UserID: "ghost"})
	require.NoError(t, err)
	assert.Zero(t, output.SpendingProfile.TotalSpent)
	assert.Equal(t, []string{
		"No spending data available. Complete the survey to see personalized insights!",
	}, output.Insights)
}

// internal/matching/matcher.go
package matching

import (
	"context"
	"fmt"
	"time"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/common/metrics"
	"cardmatch-workers/internal/models"
)

// Embedder turns an ordered list of texts into one vector per text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// CatalogSource provides the full card catalog, already canonicalized.
type CatalogSource interface {
	GetAll(ctx context.Context) ([]models.CreditCard, error)
}

// Matcher runs the end-to-end recommendation pipeline: tier classification,
// catalog narrowing, embedding, cosine ranking, and display rescaling.
// A Matcher is stateless across calls; concurrent use is safe.
type Matcher struct {
	catalog       CatalogSource
	embedder      Embedder
	maxCandidates int
	logger        logger.Logger
}

// DefaultMaxCandidates bounds the number of cards sent to the embedding
// service per request.
const DefaultMaxCandidates = 50

func NewMatcher(catalog CatalogSource, embedder Embedder, maxCandidates int, log logger.Logger) *Matcher {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Matcher{
		catalog:       catalog,
		embedder:      embedder,
		maxCandidates: maxCandidates,
		logger:        log.WithFields(map[string]interface{}{"component": "matcher"}),
	}
}

// Match returns the topN cards for a profile, ordered best-first, with
// display scores in [0.7, 1.0]. An empty result is not an error: it means
// no card survived filtering or topN was not positive. An embedding
// failure aborts the whole call with no partial result.
func (m *Matcher) Match(ctx context.Context, user *models.UserProfile, topN int) ([]models.RankedCandidate, error) {
	if topN <= 0 {
		return []models.RankedCandidate{}, nil
	}

	start := time.Now()
	userTier := DetermineUserRank(user)

	allCards, err := m.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	filtered := FilterCardsByTier(allCards, userTier)
	filtered = filterEligible(user, filtered)

	// Not enough candidates: relax the tier filter, but never eligibility.
	if len(filtered) < topN {
		m.logger.Debug("relaxing tier filter", map[string]interface{}{
			"tier":      userTier,
			"remaining": len(filtered),
			"topN":      topN,
		})
		filtered = filterEligible(user, allCards)
	}

	if len(filtered) > m.maxCandidates {
		filtered = filtered[:m.maxCandidates]
	}

	if len(filtered) == 0 {
		return []models.RankedCandidate{}, nil
	}

	texts := make([]string, 0, len(filtered)+1)
	texts = append(texts, ProfileText(user))
	for i := range filtered {
		texts = append(texts, CardText(&filtered[i]))
	}

	embeddings, err := m.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed candidates: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embed candidates: got %d vectors for %d texts", len(embeddings), len(texts))
	}

	profileVec := embeddings[0]
	scored := rankBySimilarity(profileVec, filtered, embeddings[1:])

	if len(scored) > topN {
		scored = scored[:topN]
	}

	minScore, maxScore := scored[0].rawSimilarity, scored[0].rawSimilarity
	for _, s := range scored[1:] {
		if s.rawSimilarity < minScore {
			minScore = s.rawSimilarity
		}
		if s.rawSimilarity > maxScore {
			maxScore = s.rawSimilarity
		}
	}

	results := make([]models.RankedCandidate, len(scored))
	for i, s := range scored {
		results[i] = models.RankedCandidate{
			Card:          s.card,
			RawSimilarity: s.rawSimilarity,
			DisplayScore:  BoostSimilarityScore(s.rawSimilarity, minScore, maxScore),
			Tier:          userTier,
		}
	}

	metrics.RecommendationsServed.WithLabelValues(string(userTier)).Add(float64(len(results)))
	m.logger.Info("match completed", map[string]interface{}{
		"tier":       userTier,
		"catalog":    len(allCards),
		"candidates": len(filtered),
		"returned":   len(results),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return results, nil
}

func filterEligible(user *models.UserProfile, cards []models.CreditCard) []models.CreditCard {
	out := make([]models.CreditCard, 0, len(cards))
	for i := range cards {
		if MeetsHardRequirements(user, &cards[i]) {
			out = append(out, cards[i])
		}
	}
	return out
}

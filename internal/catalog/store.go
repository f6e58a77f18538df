// internal/catalog/store.go

// Package catalog loads the credit card catalog from Postgres with a
// Redis read-through cache in front. The catalog changes rarely; a short
// TTL keeps edits visible without hitting Postgres per request.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "catalog:cards"

// Store reads the canonicalized card catalog.
type Store struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewStore(db *sql.DB, redisClient *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

// GetAll returns every card in the catalog, canonicalized, in stable
// catalog order. An empty catalog is a valid result, not an error;
// consumers produce empty recommendations from it. Empty results are
// never cached so a freshly seeded catalog shows up immediately.
func (s *Store) GetAll(ctx context.Context) ([]models.CreditCard, error) {
	if cards, ok := s.fromCache(ctx); ok {
		return cards, nil
	}

	cards, err := s.fromDatabase(ctx)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return []models.CreditCard{}, nil
	}

	s.toCache(ctx, cards)
	return cards, nil
}

func (s *Store) fromCache(ctx context.Context) ([]models.CreditCard, bool) {
	val, err := s.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var cards []models.CreditCard
	if err := json.Unmarshal([]byte(val), &cards); err != nil || len(cards) == 0 {
		return nil, false
	}
	return cards, true
}

func (s *Store) toCache(ctx context.Context, cards []models.CreditCard) {
	data, err := json.Marshal(cards)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Store) fromDatabase(ctx context.Context) ([]models.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, bank, category, type, annual_fee_amount, annual_fee_text,
		       rewards_type, benefits, credit_score_needed, image_url,
		       application_url, eligibility_requirements
		FROM credit_cards
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var cards []models.CreditCard
	for rows.Next() {
		record, err := scanCardRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		cards = append(cards, record.Canonicalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	return cards, nil
}

func scanCardRecord(rows *sql.Rows) (*models.CardRecord, error) {
	var (
		record       models.CardRecord
		bank         sql.NullString
		category     sql.NullString
		cardType     sql.NullString
		feeAmount    sql.NullFloat64
		feeText      sql.NullString
		rewardsType  sql.NullString
		benefits     []byte
		scoreNeeded  sql.NullString
		imageURL     sql.NullString
		appURL       sql.NullString
		requirements []byte
	)

	if err := rows.Scan(&record.ID, &record.Name, &bank, &category, &cardType,
		&feeAmount, &feeText, &rewardsType, &benefits, &scoreNeeded,
		&imageURL, &appURL, &requirements); err != nil {
		return nil, err
	}

	record.Bank = bank.String
	record.Category = category.String
	record.Type = cardType.String
	if feeAmount.Valid {
		fee := feeAmount.Float64
		record.AnnualFee = &fee
	}
	record.AnnualFeeText = feeText.String
	record.RewardsType = rewardsType.String
	record.Benefits = json.RawMessage(benefits)
	record.CreditScoreNeeded = scoreNeeded.String
	record.ImageURL = imageURL.String
	record.ApplicationURL = appURL.String

	if len(requirements) > 0 {
		var reqs models.EligibilityRequirements
		if err := json.Unmarshal(requirements, &reqs); err == nil {
			record.Requirements = &reqs
		}
	}

	return &record, nil
}

// internal/profile/store.go

// Package profile reads user credit profiles. Profiles are written by the
// onboarding service; this side is read-only, with a Redis cache keyed per
// user in front of Postgres.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrProfileNotFound = errors.New("PROFILE_NOT_FOUND")

// Store reads user profiles by ID.
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
		logger:   log.WithFields(map[string]interface{}{"component": "profile"}),
	}
}

func cacheKey(userID string) string {
	return "user:profile:" + userID
}

// Get returns the profile for userID. A missing row maps to
// ErrProfileNotFound so callers can raise the matching process error.
func (s *Store) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := cacheKey(userID)
	if val, err := s.redis.Get(ctx, key).Result(); err == nil {
		var profile models.UserProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	profile, err := s.fromDatabase(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		s.redis.Set(ctx, key, data, s.cacheTTL)
	}

	return profile, nil
}

func (s *Store) fromDatabase(ctx context.Context, userID string) (*models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT credit_score, annual_income, employment_status, has_credit_cards,
		       credit_cards, credit_length, late_payments, credit_goal,
		       citizenship_status, purchases
		FROM user_profiles WHERE user_id = $1`, userID)

	profile := models.UserProfile{UserID: userID}
	var (
		creditScore    sql.NullString
		annualIncome   sql.NullString
		employment     sql.NullString
		hasCreditCards sql.NullString
		creditCards    []byte
		creditLength   sql.NullString
		latePayments   sql.NullString
		creditGoal     sql.NullString
		citizenship    sql.NullString
		purchases      []byte
	)

	err := row.Scan(&creditScore, &annualIncome, &employment, &hasCreditCards,
		&creditCards, &creditLength, &latePayments, &creditGoal,
		&citizenship, &purchases)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	profile.CreditScore = creditScore.String
	profile.AnnualIncome = annualIncome.String
	profile.EmploymentStatus = employment.String
	profile.HasCreditCards = hasCreditCards.String
	profile.CreditLength = creditLength.String
	profile.LatePayments = latePayments.String
	profile.CreditGoal = creditGoal.String
	profile.CitizenshipStatus = citizenship.String

	if len(creditCards) > 0 {
		if err := json.Unmarshal(creditCards, &profile.CreditCards); err != nil {
			profile.CreditCards = nil
		}
	}
	if len(purchases) > 0 {
		if err := json.Unmarshal(purchases, &profile.Purchases); err != nil {
			s.logger.Warn("unparseable purchase history", map[string]interface{}{
				"userId": userID,
			})
			profile.Purchases = nil
		}
	}

	return &profile, nil
}

// internal/catalog/store_test.go
package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cardmatch-workers/internal/common/logger"
	"cardmatch-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogColumns = []string{
	"id", "name", "bank", "category", "type", "annual_fee_amount",
	"annual_fee_text", "rewards_type", "benefits", "credit_score_needed",
	"image_url", "application_url", "eligibility_requirements",
}

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	return NewStore(db, redisClient, 5*time.Minute, logger.NewNoOpLogger()), mock, mr
}

func TestGetAll_LoadsAndCanonicalizes(t *testing.T) {
	store, mock, _ := newTestStore(t)

	mock.ExpectQuery("SELECT id, name, bank").WillReturnRows(
		sqlmock.NewRows(catalogColumns).
			AddRow("card-1", "Everyday Cash", "First National", "cashback", "personal",
				95.0, "", "cashback", []byte(`["2% cash back","No foreign fees"]`),
				"good", "", "", []byte(`{"credit_score":"good"}`)).
			AddRow("card-2", "First Step Secured", "First National", "secured", "personal",
				nil, "$0", "", []byte(`"Credit building, Free score access"`),
				"", "", "", nil),
	)

	cards, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "Everyday Cash", cards[0].Name)
	assert.Equal(t, "First National", cards[0].Issuer)
	assert.Equal(t, 95.0, cards[0].AnnualFee)
	assert.True(t, cards[0].HasAnnualFee)
	assert.Equal(t, []string{"2% cash back", "No foreign fees"}, cards[0].Benefits)
	require.NotNil(t, cards[0].Requirements)
	assert.Equal(t, "good", cards[0].Requirements.CreditScore)

	// string fee form keeps the raw text and parses the amount
	assert.Equal(t, "$0", cards[1].AnnualFeeRaw)
	assert.Equal(t, 0.0, cards[1].AnnualFee)
	assert.Equal(t, []string{"Credit building", "Free score access"}, cards[1].Benefits)
	assert.Nil(t, cards[1].Requirements)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_CacheHitSkipsDatabase(t *testing.T) {
	store, mock, mr := newTestStore(t)

	cached := []models.CreditCard{{ID: "card-1", Name: "Everyday Cash"}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey, string(data)))

	cards, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, cards)

	// no query expectations were registered; a DB call would have failed
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_PopulatesCacheAfterMiss(t *testing.T) {
	store, mock, mr := newTestStore(t)

	mock.ExpectQuery("SELECT id, name, bank").WillReturnRows(
		sqlmock.NewRows(catalogColumns).
			AddRow("card-1", "Everyday Cash", "First National", "cashback", "personal",
				0.0, "", "cashback", nil, "good", "", "", nil),
	)

	_, err := store.GetAll(context.Background())
	require.NoError(t, err)

	raw, err := mr.Get(cacheKey)
	require.NoError(t, err)

	var cached []models.CreditCard
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "Everyday Cash", cached[0].Name)
}

func TestGetAll_EmptyCatalogIsNotAnError(t *testing.T) {
	store, mock, mr := newTestStore(t)

	mock.ExpectQuery("SELECT id, name, bank").
		WillReturnRows(sqlmock.NewRows(catalogColumns))

	cards, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)

	// empty results are never written to the cache
	assert.False(t, mr.Exists(cacheKey))
}

func TestGetAll_CorruptCacheFallsThrough(t *testing.T) {
	store, mock, mr := newTestStore(t)

	require.NoError(t, mr.Set(cacheKey, "{not json"))

	mock.ExpectQuery("SELECT id, name, bank").WillReturnRows(
		sqlmock.NewRows(catalogColumns).
			AddRow("card-1", "Everyday Cash", "First National", "cashback", "personal",
				0.0, "", "cashback", nil, "good", "", "", nil),
	)

	cards, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

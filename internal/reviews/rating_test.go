package reviews

import (
	"context"
	"testing"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRatingZeroReviews(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	_, albumID := seed(t, db)

	rating, err := m.GetRating(context.Background(), albumID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating.AverageRating)
	assert.Equal(t, 0, rating.ReviewCount)
}

func TestGetRatingMean(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	_, albumID := seed(t, db)

	for i, r := range []int{4, 5, 3} {
		uid := seedUser(t, db, "rater"+string(rune('a'+i)))
		_, err := m.Create(context.Background(), uid, albumID, r, "")
		require.NoError(t, err)
	}

	rating, err := m.GetRating(context.Background(), albumID)
	require.NoError(t, err)
	assert.Equal(t, 3, rating.ReviewCount)
	assert.InDelta(t, 4.0, rating.AverageRating, 1e-9)
}

func TestGetRatingUnknownAlbum(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	seed(t, db)

	_, err := m.GetRating(context.Background(), 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/EnzoDelpy/tunerate-api/internal/music"
	"gorm.io/gorm"
)

// Rating is the on-demand aggregate over an album's reviews.
type Rating struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// GetRating computes the arithmetic mean of an album's ratings. An album
// with no reviews yields the explicit zero aggregate.
func (m *Manager) GetRating(ctx context.Context, albumID uint) (*Rating, error) {
	var album music.Album
	if err := m.db.WithContext(ctx).First(&album, albumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album %d: %w", albumID, apperr.ErrNotFound)
		}
		return nil, err
	}

	var ratings []int
	if err := m.db.WithContext(ctx).Model(&Review{}).
		Where("album_id = ?", albumID).Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}

	if len(ratings) == 0 {
		return &Rating{AverageRating: 0, ReviewCount: 0}, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return &Rating{
		AverageRating: float64(sum) / float64(len(ratings)),
		ReviewCount:   len(ratings),
	}, nil
}

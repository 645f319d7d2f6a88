package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/EnzoDelpy/tunerate-api/internal/music"
	"github.com/EnzoDelpy/tunerate-api/internal/users"
	"gorm.io/gorm"
)

const (
	defaultTake = 20
	maxTake     = 100
)

// Manager enforces the uniqueness and ownership invariants over review
// rows. It operates purely on local store data keyed by internal ids.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Page is the envelope returned by the list operations.
type Page struct {
	Items   []Review `json:"items"`
	Total   int64    `json:"total"`
	Skip    int      `json:"skip"`
	Take    int      `json:"take"`
	HasMore bool     `json:"has_more"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Rating  *int
	Comment *string
}

func (m *Manager) Create(ctx context.Context, userID, albumID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	var album music.Album
	if err := m.db.WithContext(ctx).First(&album, albumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album %d: %w", albumID, apperr.ErrNotFound)
		}
		return nil, err
	}

	review := Review{
		UserID:  userID,
		AlbumID: albumID,
		Rating:  rating,
		Comment: comment,
	}
	if err := m.db.WithContext(ctx).Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("review for album %d: %w", albumID, apperr.ErrConflict)
		}
		return nil, err
	}
	return &review, nil
}

func (m *Manager) FindOne(ctx context.Context, reviewID uint) (*Review, error) {
	var review Review
	if err := m.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", reviewID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &review, nil
}

func (m *Manager) Update(ctx context.Context, reviewID, actorID uint, patch Patch) (*Review, error) {
	review, err := m.FindOne(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID {
		return nil, fmt.Errorf("review %d: %w", reviewID, apperr.ErrForbidden)
	}

	if patch.Rating != nil {
		if *patch.Rating < 1 || *patch.Rating > 5 {
			return nil, fmt.Errorf("rating must be between 1 and 5")
		}
		review.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		review.Comment = *patch.Comment
	}

	if err := m.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (m *Manager) Remove(ctx context.Context, reviewID, actorID uint) error {
	review, err := m.FindOne(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actorID {
		return fmt.Errorf("review %d: %w", reviewID, apperr.ErrForbidden)
	}
	return m.db.WithContext(ctx).Delete(review).Error
}

func (m *Manager) List(ctx context.Context, skip, take int) (*Page, error) {
	return m.list(m.db.WithContext(ctx).Model(&Review{}), skip, take)
}

func (m *Manager) ListByAlbum(ctx context.Context, albumID uint, skip, take int) (*Page, error) {
	var album music.Album
	if err := m.db.WithContext(ctx).First(&album, albumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album %d: %w", albumID, apperr.ErrNotFound)
		}
		return nil, err
	}
	query := m.db.WithContext(ctx).Model(&Review{}).Where("album_id = ?", albumID)
	return m.list(query, skip, take)
}

func (m *Manager) ListByUser(ctx context.Context, userID uint, skip, take int) (*Page, error) {
	var user users.User
	if err := m.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
		}
		return nil, err
	}
	query := m.db.WithContext(ctx).Model(&Review{}).Where("user_id = ?", userID)
	return m.list(query, skip, take)
}

func (m *Manager) list(query *gorm.DB, skip, take int) (*Page, error) {
	if skip < 0 {
		skip = 0
	}
	if take < 1 || take > maxTake {
		take = defaultTake
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]Review, 0, take)
	if err := query.Order("created_at DESC").Offset(skip).Limit(take).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page{
		Items:   items,
		Total:   total,
		Skip:    skip,
		Take:    take,
		HasMore: int64(skip+take) < total,
	}, nil
}

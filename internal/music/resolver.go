package music

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/EnzoDelpy/tunerate-api/internal/catalog"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService is the slice of the catalog client the resolver needs.
type CatalogService interface {
	GetArtistDetails(ctx context.Context, externalID string) (*catalog.Artist, error)
	GetAlbumDetails(ctx context.Context, externalID string) (*catalog.Album, error)
	GetArtistAlbums(ctx context.Context, externalArtistID string) ([]catalog.Album, error)
}

// Resolver turns external catalog ids into persisted local entities.
// Reads check the local store first; a miss fetches from the catalog and
// writes the result back (cache-aside).
type Resolver struct {
	db      *gorm.DB
	catalog CatalogService
}

func NewResolver(db *gorm.DB, svc CatalogService) *Resolver {
	return &Resolver{db: db, catalog: svc}
}

// ResolveArtist returns the local artist for an external id, creating it
// from catalog data on first access.
func (r *Resolver) ResolveArtist(ctx context.Context, externalID string) (*Artist, error) {
	var artist Artist
	err := r.db.WithContext(ctx).Preload("Albums").
		Where("external_id = ?", externalID).First(&artist).Error
	if err == nil {
		return &artist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	details, err := r.catalog.GetArtistDetails(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return r.CreateArtist(ctx, artistFromCatalog(details))
}

// CreateArtist inserts the artist, or returns the already-persisted row
// when another request won the insert. The ON CONFLICT clause makes the
// find-or-create atomic; losing a race is not an error.
func (r *Resolver) CreateArtist(ctx context.Context, artist *Artist) (*Artist, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(artist)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var existing Artist
		if err := r.db.WithContext(ctx).
			Where("external_id = ?", artist.ExternalID).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return artist, nil
}

// ResolveAlbum mirrors ResolveArtist, resolving the owning artist first
// so the album row always carries a valid artist association.
func (r *Resolver) ResolveAlbum(ctx context.Context, externalID string) (*Album, error) {
	var album Album
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).First(&album).Error
	if err == nil {
		return &album, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	details, err := r.catalog.GetAlbumDetails(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if len(details.Artists) == 0 {
		return nil, fmt.Errorf("%w: album %s has no artist", apperr.ErrCatalogNotFound, externalID)
	}

	artist, err := r.ResolveArtist(ctx, details.Artists[0].ID)
	if err != nil {
		return nil, err
	}

	return r.CreateAlbum(ctx, albumFromCatalog(details, artist.ID))
}

// CreateAlbum has the same insert-or-return-existing semantics as
// CreateArtist.
func (r *Resolver) CreateAlbum(ctx context.Context, album *Album) (*Album, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(album)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var existing Album
		if err := r.db.WithContext(ctx).
			Where("external_id = ?", album.ExternalID).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return album, nil
}

// GetArtistAlbums returns the artist's locally stored albums when any
// exist. Otherwise it returns the catalog's list without persisting it:
// albums are only written back through ResolveAlbum, once somebody
// reviews one.
func (r *Resolver) GetArtistAlbums(ctx context.Context, artistID uint) ([]Album, []catalog.Album, error) {
	var artist Artist
	if err := r.db.WithContext(ctx).First(&artist, artistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("artist %d: %w", artistID, apperr.ErrNotFound)
		}
		return nil, nil, err
	}

	var local []Album
	if err := r.db.WithContext(ctx).
		Where("artist_id = ?", artist.ID).Order("release_date DESC").
		Find(&local).Error; err != nil {
		return nil, nil, err
	}
	if len(local) > 0 {
		return local, nil, nil
	}

	remote, err := r.catalog.GetArtistAlbums(ctx, artist.ExternalID)
	if err != nil {
		return nil, nil, err
	}
	return nil, remote, nil
}

// GetArtist returns a locally persisted artist by numeric id.
func (r *Resolver) GetArtist(ctx context.Context, id uint) (*Artist, error) {
	var artist Artist
	if err := r.db.WithContext(ctx).Preload("Albums").First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artist %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &artist, nil
}

// GetAlbum returns a locally persisted album by numeric id.
func (r *Resolver) GetAlbum(ctx context.Context, id uint) (*Album, error) {
	var album Album
	if err := r.db.WithContext(ctx).First(&album, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &album, nil
}

func artistFromCatalog(a *catalog.Artist) *Artist {
	return &Artist{
		ExternalID: a.ID,
		Name:       a.Name,
		Slug:       slug.Make(a.Name),
		ImageURL:   a.ImageURL(),
	}
}

func albumFromCatalog(a *catalog.Album, artistID uint) *Album {
	album := &Album{
		ExternalID:  a.ID,
		Title:       a.Name,
		Slug:        slug.Make(a.Name),
		CoverURL:    a.CoverURL(),
		ArtistID:    artistID,
		ReleaseDate: parseReleaseDate(a.ReleaseDate),
	}
	return album
}

// parseReleaseDate accepts the catalog's day, month and year precisions.
func parseReleaseDate(s string) *time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

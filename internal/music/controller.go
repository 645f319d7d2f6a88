package music

import (
	"net/http"
	"strconv"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/EnzoDelpy/tunerate-api/internal/catalog"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	resolver *Resolver
	catalog  *catalog.Client
}

func NewController(resolver *Resolver, client *catalog.Client) *Controller {
	return &Controller{resolver: resolver, catalog: client}
}

func (ct *Controller) SearchArtistsHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	artists, err := ct.catalog.SearchArtists(c.Request.Context(), query)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": artists})
}

func (ct *Controller) SearchAlbumsHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	albums, err := ct.catalog.SearchAlbums(c.Request.Context(), query, limit, offset)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": albums, "limit": limit, "offset": offset})
}

// GetArtistHandler accepts either a numeric local id or an external
// catalog id; external ids are resolved (and persisted on first access).
func (ct *Controller) GetArtistHandler(c *gin.Context) {
	identifier := c.Param("id")

	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		artist, gerr := ct.resolver.GetArtist(c.Request.Context(), uint(id))
		if gerr != nil {
			apperr.Respond(c, gerr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": artist})
		return
	}

	artist, err := ct.resolver.ResolveArtist(c.Request.Context(), identifier)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": artist})
}

// GetArtistAlbumsHandler lists a local artist's albums; when none are
// stored yet the catalog's listing is returned as-is.
func (ct *Controller) GetArtistAlbumsHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artist id"})
		return
	}

	local, remote, err := ct.resolver.GetArtistAlbums(c.Request.Context(), uint(id))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if local != nil {
		c.JSON(http.StatusOK, gin.H{"data": local})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": remote})
}

// GetAlbumHandler mirrors GetArtistHandler's id-or-external lookup.
func (ct *Controller) GetAlbumHandler(c *gin.Context) {
	identifier := c.Param("id")

	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		album, gerr := ct.resolver.GetAlbum(c.Request.Context(), uint(id))
		if gerr != nil {
			apperr.Respond(c, gerr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": album})
		return
	}

	album, err := ct.resolver.ResolveAlbum(c.Request.Context(), identifier)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": album})
}

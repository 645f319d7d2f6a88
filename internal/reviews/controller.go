package reviews

import (
	"net/http"
	"strconv"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/EnzoDelpy/tunerate-api/internal/auth"
	"github.com/EnzoDelpy/tunerate-api/internal/music"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	manager  *Manager
	resolver *music.Resolver
}

func NewController(manager *Manager, resolver *music.Resolver) *Controller {
	return &Controller{manager: manager, resolver: resolver}
}

type createReviewDTO struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

type updateReviewDTO struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// CreateHandler posts a review on an album addressed by external catalog
// id. Resolving first is what persists an album locally: rows only show
// up once somebody reviews them.
func (ct *Controller) CreateHandler(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var body createReviewDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	album, err := ct.resolveAlbumParam(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	review, err := ct.manager.Create(c.Request.Context(), userID, album.ID, body.Rating, body.Comment)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (ct *Controller) UpdateHandler(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var body updateReviewDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := ct.manager.Update(c.Request.Context(), uint(reviewID), userID, Patch{
		Rating:  body.Rating,
		Comment: body.Comment,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (ct *Controller) DeleteHandler(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	if err := ct.manager.Remove(c.Request.Context(), uint(reviewID), userID); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ct *Controller) ListHandler(c *gin.Context) {
	skip, take := pageParams(c)
	page, err := ct.manager.List(c.Request.Context(), skip, take)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ct *Controller) ListByAlbumHandler(c *gin.Context) {
	album, err := ct.resolveAlbumParam(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	skip, take := pageParams(c)
	page, err := ct.manager.ListByAlbum(c.Request.Context(), album.ID, skip, take)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ct *Controller) ListByUserHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	skip, take := pageParams(c)
	page, err := ct.manager.ListByUser(c.Request.Context(), uint(userID), skip, take)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ct *Controller) GetRatingHandler(c *gin.Context) {
	album, err := ct.resolveAlbumParam(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	rating, err := ct.manager.GetRating(c.Request.Context(), album.ID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// resolveAlbumParam accepts a numeric local id or an external catalog id
// in the :id segment, same convention as the album routes.
func (ct *Controller) resolveAlbumParam(c *gin.Context) (*music.Album, error) {
	identifier := c.Param("id")
	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		return ct.resolver.GetAlbum(c.Request.Context(), uint(id))
	}
	return ct.resolver.ResolveAlbum(c.Request.Context(), identifier)
}

func pageParams(c *gin.Context) (skip, take int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	take, _ = strconv.Atoi(c.DefaultQuery("take", "20"))
	return skip, take
}

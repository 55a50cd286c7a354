package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/api/internal/adapters/http/handlers"
	"github.com/sweetshop/api/internal/adapters/http/middleware"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/dto"
	"github.com/sweetshop/api/internal/core/service"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

type SweetController struct {
	sweetService *service.SweetService
}

type SweetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SweetPageResponse struct {
	Sweets     []SweetResponse `json:"sweets"`
	Total      int64           `json:"total"`
	Page       int64           `json:"page"`
	Limit      int64           `json:"limit"`
	TotalPages int64           `json:"totalPages"`
}

func NewSweetResponse(sweet *domain.Sweet) SweetResponse {
	return SweetResponse{
		ID:          string(sweet.ID),
		Name:        sweet.Name,
		Category:    sweet.Category,
		Price:       int64(sweet.Price),
		Quantity:    sweet.Quantity,
		Description: sweet.Description,
		ImageURL:    sweet.ImageURL,
		CreatedAt:   sweet.CreatedAt,
		UpdatedAt:   sweet.UpdatedAt,
	}
}

func NewSweetPageResponse(page *service.SweetPage) SweetPageResponse {
	sweets := make([]SweetResponse, len(page.Sweets))
	for i, sweet := range page.Sweets {
		sweets[i] = NewSweetResponse(sweet)
	}
	return SweetPageResponse{
		Sweets:     sweets,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func NewSweetController(sweetService *service.SweetService) *SweetController {
	return &SweetController{sweetService: sweetService}
}

// CreateSweet godoc
// @Summary     Create a sweet
// @Description Adds a sweet to the catalog (admin only)
// @Tags        sweets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     dto.CreateSweetRequest true "Sweet data"
// @Success     201     {object} SweetResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     403     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/sweets [post]
func (sc *SweetController) CreateSweet(c *gin.Context) {
	var request dto.CreateSweetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	sweet, err := sc.sweetService.CreateSweet(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSweetResponse(sweet))
}

// List godoc
// @Summary     List sweets
// @Description Returns a page of the catalog
// @Tags        sweets
// @Produce     json
// @Security    BearerAuth
// @Param       page  query    int false "Page number"    default(1)
// @Param       limit query    int false "Items per page" default(10)
// @Success     200   {object} SweetPageResponse
// @Failure     400   {object} handlers.ErrorResponse
// @Failure     401   {object} handlers.ErrorResponse
// @Router      /api/sweets [get]
func (sc *SweetController) List(c *gin.Context) {
	var request dto.ListSweetsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	page, err := sc.sweetService.List(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSweetPageResponse(page))
}

// Search godoc
// @Summary     Search sweets
// @Description Filters the catalog by name, category and price range
// @Tags        sweets
// @Produce     json
// @Security    BearerAuth
// @Param       name     query    string false "Name substring"
// @Param       category query    string false "Exact category"
// @Param       minPrice query    int    false "Minimum price in cents"
// @Param       maxPrice query    int    false "Maximum price in cents"
// @Param       page     query    int    false "Page number"    default(1)
// @Param       limit    query    int    false "Items per page" default(10)
// @Success     200      {object} SweetPageResponse
// @Failure     400      {object} handlers.ErrorResponse
// @Failure     401      {object} handlers.ErrorResponse
// @Router      /api/sweets/search [get]
func (sc *SweetController) Search(c *gin.Context) {
	var request dto.SearchSweetsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	page, err := sc.sweetService.Search(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSweetPageResponse(page))
}

// GetByID godoc
// @Summary     Get a sweet
// @Tags        sweets
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Sweet ID"
// @Success     200 {object} SweetResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/sweets/{id} [get]
func (sc *SweetController) GetByID(c *gin.Context) {
	sweet, err := sc.sweetService.GetByID(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

// UpdateSweet godoc
// @Summary     Update a sweet
// @Description Applies a partial update; quantity is only changed through purchase and restock
// @Tags        sweets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string                 true "Sweet ID"
// @Param       request body     dto.UpdateSweetRequest true "Fields to update"
// @Success     200     {object} SweetResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     403     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Router      /api/sweets/{id} [put]
func (sc *SweetController) UpdateSweet(c *gin.Context) {
	var request dto.UpdateSweetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	sweet, err := sc.sweetService.UpdateSweet(c.Request.Context(), domain.ID(c.Param("id")), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

// DeleteSweet godoc
// @Summary     Delete a sweet
// @Tags        sweets
// @Security    BearerAuth
// @Param       id path string true "Sweet ID"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     403 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/sweets/{id} [delete]
func (sc *SweetController) DeleteSweet(c *gin.Context) {
	if err := sc.sweetService.DeleteSweet(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Purchase godoc
// @Summary     Purchase a sweet
// @Description Atomically decrements stock; an Idempotency-Key header makes retries safe
// @Tags        sweets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id              path     string              true  "Sweet ID"
// @Param       Idempotency-Key header   string              false "Retry-safe request key"
// @Param       request         body     dto.QuantityRequest true  "Quantity to purchase"
// @Success     200             {object} SweetResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     401             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Router      /api/sweets/{id}/purchase [post]
func (sc *SweetController) Purchase(c *gin.Context) {
	var request dto.QuantityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	var buyer domain.ID
	if identity, ok := middleware.IdentityFrom(c); ok {
		buyer = identity.UserID
	}

	sweet, err := sc.sweetService.Purchase(
		c.Request.Context(),
		c.GetHeader("Idempotency-Key"),
		domain.ID(c.Param("id")),
		request.Quantity,
		buyer,
	)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

// Restock godoc
// @Summary     Restock a sweet
// @Description Increments stock (admin only)
// @Tags        sweets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string              true "Sweet ID"
// @Param       request body     dto.QuantityRequest true "Quantity to add"
// @Success     200     {object} SweetResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     403     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Router      /api/sweets/{id}/restock [post]
func (sc *SweetController) Restock(c *gin.Context) {
	var request dto.QuantityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	sweet, err := sc.sweetService.Restock(c.Request.Context(), domain.ID(c.Param("id")), request.Quantity)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

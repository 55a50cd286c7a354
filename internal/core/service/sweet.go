package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/dto"
	"github.com/sweetshop/api/internal/core/logger"
	"github.com/sweetshop/api/internal/core/port"
	"github.com/sweetshop/api/internal/core/serviceerrors"
	"github.com/sweetshop/api/internal/core/utils"
)

const sweetCacheTTL = 15 * time.Minute

// SweetPage is the pagination envelope returned by List and Search.
type SweetPage struct {
	Sweets     []*domain.Sweet
	Total      int64
	Page       int64
	Limit      int64
	TotalPages int64
}

type SweetService struct {
	sweetRepository port.SweetPort
	sweetCache      port.CachePort[domain.Sweet]
	idempotency     *IdempotencyService[domain.Sweet]
	txManager       port.TransactionManager
}

func NewSweetService(
	sweetRepository port.SweetPort,
	sweetCache port.CachePort[domain.Sweet],
	idempotency *IdempotencyService[domain.Sweet],
	txManager port.TransactionManager,
) *SweetService {
	return &SweetService{
		sweetRepository: sweetRepository,
		sweetCache:      sweetCache,
		idempotency:     idempotency,
		txManager:       txManager,
	}
}

func (s *SweetService) cacheKey(id domain.ID) string {
	return fmt.Sprintf("sweet:%s", id)
}

func (s *SweetService) CreateSweet(ctx context.Context, request *dto.CreateSweetRequest) (*domain.Sweet, error) {
	sweet := domain.NewSweet(
		request.Name,
		request.Category,
		domain.NewAmountFromCents(int(request.Price)),
		request.Quantity,
		request.Description,
		request.ImageURL,
	)

	if err := s.sweetRepository.Create(ctx, sweet); err != nil {
		logger.Error(ctx, "sweet: create failed", err, map[string]any{
			"name":     request.Name,
			"category": request.Category,
		})
		return nil, err
	}

	logger.Info(ctx, "Sweet created", map[string]any{"sweet_id": sweet.ID})
	return sweet, nil
}

func (s *SweetService) GetByID(ctx context.Context, id domain.ID) (*domain.Sweet, error) {
	cached, err := s.sweetCache.Get(ctx, s.cacheKey(id))
	if err != nil {
		logger.Error(ctx, "cache: get sweet failed", err, map[string]any{
			"sweet_id": id,
		})
	}
	if cached != nil {
		return cached, nil
	}

	sweet, err := s.sweetRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.sweetCache.Set(ctx, s.cacheKey(id), sweet, sweetCacheTTL); err != nil {
		logger.Error(ctx, "cache: set sweet failed", err, map[string]any{
			"sweet_id": id,
		})
	}

	return sweet, nil
}

func (s *SweetService) newPage(sweets []*domain.Sweet, total, page, limit int64) *SweetPage {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &SweetPage{
		Sweets:     sweets,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

func (s *SweetService) List(ctx context.Context, request *dto.ListSweetsRequest) (*SweetPage, error) {
	offset := (request.Page - 1) * request.Limit
	sweets, total, err := s.sweetRepository.List(ctx, request.Limit, offset)
	if err != nil {
		return nil, err
	}
	return s.newPage(sweets, total, request.Page, request.Limit), nil
}

func (s *SweetService) Search(ctx context.Context, request *dto.SearchSweetsRequest) (*SweetPage, error) {
	if request.MinPrice != nil && request.MaxPrice != nil && *request.MinPrice > *request.MaxPrice {
		return nil, serviceerrors.NewInvalidRequestError("minPrice cannot exceed maxPrice")
	}

	filter := domain.SweetFilter{}
	if request.Name != "" {
		filter.Name = &request.Name
	}
	if request.Category != "" {
		filter.Category = &request.Category
	}
	if request.MinPrice != nil {
		min := domain.NewAmountFromCents(int(*request.MinPrice))
		filter.MinPrice = &min
	}
	if request.MaxPrice != nil {
		max := domain.NewAmountFromCents(int(*request.MaxPrice))
		filter.MaxPrice = &max
	}

	offset := (request.Page - 1) * request.Limit
	sweets, total, err := s.sweetRepository.Search(ctx, filter, request.Limit, offset)
	if err != nil {
		return nil, err
	}
	return s.newPage(sweets, total, request.Page, request.Limit), nil
}

func (s *SweetService) UpdateSweet(ctx context.Context, id domain.ID, request *dto.UpdateSweetRequest) (*domain.Sweet, error) {
	patch := domain.SweetPatch{
		Name:        request.Name,
		Category:    request.Category,
		Description: request.Description,
		ImageURL:    request.ImageURL,
	}
	if request.Price != nil {
		price := domain.NewAmountFromCents(int(*request.Price))
		patch.Price = &price
	}
	if patch.IsEmpty() {
		return nil, serviceerrors.NewInvalidRequestError("no fields to update")
	}

	sweet, err := s.sweetRepository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if err := s.sweetCache.Set(ctx, s.cacheKey(id), sweet, sweetCacheTTL); err != nil {
		logger.Error(ctx, "cache: update sweet failed", err, map[string]any{
			"sweet_id": id,
		})
	}

	logger.Info(ctx, "Sweet updated", map[string]any{"sweet_id": id})
	return sweet, nil
}

func (s *SweetService) DeleteSweet(ctx context.Context, id domain.ID) error {
	if err := s.sweetRepository.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.sweetCache.Del(ctx, s.cacheKey(id)); err != nil {
		logger.Error(ctx, "cache: delete sweet failed", err, map[string]any{
			"sweet_id": id,
		})
	}

	logger.Info(ctx, "Sweet deleted", map[string]any{"sweet_id": id})
	return nil
}

type purchasePayload struct {
	SweetID  domain.ID `json:"sweet_id"`
	Quantity int       `json:"quantity"`
}

func (s *SweetService) processPurchase(ctx context.Context, id domain.ID, quantity int, buyer domain.ID) (*domain.Sweet, error) {
	var updated *domain.Sweet
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		sweet, err := s.sweetRepository.DecrementQuantity(txCtx, id, quantity)
		if err != nil {
			return err
		}
		if err := s.sweetRepository.RecordInventoryEvent(txCtx, domain.NewSweetPurchasedEvent(sweet, quantity, buyer)); err != nil {
			return err
		}
		updated = sweet
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sweetCache.Set(ctx, s.cacheKey(id), updated, sweetCacheTTL); err != nil {
		logger.Error(ctx, "cache: refresh sweet after purchase failed", err, map[string]any{
			"sweet_id": id,
		})
	}

	logger.Info(ctx, "Sweet purchased", map[string]any{
		"sweet_id":  id,
		"quantity":  quantity,
		"remaining": updated.Quantity,
	})
	return updated, nil
}

// Purchase decrements stock for one sweet. The decrement and the event
// record commit together; the quantity check is enforced by the store's
// conditional update, not by a read in this method.
func (s *SweetService) Purchase(ctx context.Context, idempotencyKey string, id domain.ID, quantity int, buyer domain.ID) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, serviceerrors.NewInvalidRequestError("quantity must be positive")
	}

	if idempotencyKey == "" {
		return s.processPurchase(ctx, id, quantity, buyer)
	}

	payloadHash := utils.HashJSON(purchasePayload{SweetID: id, Quantity: quantity})

	existing, err := s.idempotency.Claim(ctx, idempotencyKey, payloadHash)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": idempotencyKey,
		})
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	sweet, err := s.processPurchase(ctx, id, quantity, buyer)
	if err != nil {
		s.idempotency.Release(ctx, idempotencyKey)
		return nil, err
	}

	s.idempotency.Complete(ctx, idempotencyKey, payloadHash, sweet)

	return sweet, nil
}

// Restock increments stock for one sweet. Addition commutes with other
// restocks; the same single-row update keeps it serialized against
// concurrent purchases.
func (s *SweetService) Restock(ctx context.Context, id domain.ID, quantity int) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, serviceerrors.NewInvalidRequestError("quantity must be positive")
	}

	var updated *domain.Sweet
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		sweet, err := s.sweetRepository.IncrementQuantity(txCtx, id, quantity)
		if err != nil {
			return err
		}
		if err := s.sweetRepository.RecordInventoryEvent(txCtx, domain.NewSweetRestockedEvent(sweet, quantity)); err != nil {
			return err
		}
		updated = sweet
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sweetCache.Set(ctx, s.cacheKey(id), updated, sweetCacheTTL); err != nil {
		logger.Error(ctx, "cache: refresh sweet after restock failed", err, map[string]any{
			"sweet_id": id,
		})
	}

	logger.Info(ctx, "Sweet restocked", map[string]any{
		"sweet_id": id,
		"quantity": quantity,
		"total":    updated.Quantity,
	})
	return updated, nil
}

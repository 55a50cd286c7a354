package port

import (
	"context"

	"github.com/sweetshop/api/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type SweetPort interface {
	Create(ctx context.Context, sweet *domain.Sweet) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Sweet, error)
	List(ctx context.Context, limit, offset int64) ([]*domain.Sweet, int64, error)
	Search(ctx context.Context, filter domain.SweetFilter, limit, offset int64) ([]*domain.Sweet, int64, error)
	Update(ctx context.Context, id domain.ID, patch domain.SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id domain.ID) error

	// DecrementQuantity applies a single conditional update: the quantity is
	// reduced only when the stored value is at least qty, so concurrent
	// purchases serialize on the row and can never drive it negative.
	DecrementQuantity(ctx context.Context, id domain.ID, qty int) (*domain.Sweet, error)
	IncrementQuantity(ctx context.Context, id domain.ID, qty int) (*domain.Sweet, error)

	// RecordInventoryEvent stages an event for asynchronous publication. It
	// joins the ambient transaction when ctx carries one.
	RecordInventoryEvent(ctx context.Context, event domain.Event) error
}

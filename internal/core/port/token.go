package port

import "github.com/sweetshop/api/internal/core/domain"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (*domain.Identity, error)
}

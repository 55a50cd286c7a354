package document

import (
	"time"

	"github.com/sweetshop/api/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (doc UserDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *UserDocument) ToDomain() *domain.User {
	return &domain.User{
		ID:           domain.ID(doc.ID.Hex()),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func ToUserDocument(u *domain.User) *UserDocument {
	return &UserDocument{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

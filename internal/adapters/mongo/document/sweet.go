package document

import (
	"time"

	"github.com/sweetshop/api/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SweetDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Category    string             `bson:"category"`
	Price       int64              `bson:"price"`
	Quantity    int                `bson:"quantity"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (doc SweetDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *SweetDocument) ToDomain() *domain.Sweet {
	return &domain.Sweet{
		ID:          domain.ID(doc.ID.Hex()),
		Name:        doc.Name,
		Category:    doc.Category,
		Price:       domain.Amount(doc.Price),
		Quantity:    doc.Quantity,
		Description: doc.Description,
		ImageURL:    doc.ImageURL,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func ToSweetDocument(s *domain.Sweet) *SweetDocument {
	return &SweetDocument{
		Name:        s.Name,
		Category:    s.Category,
		Price:       int64(s.Price),
		Quantity:    s.Quantity,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/api/internal/adapters/mongo/document"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/logger"
	"github.com/sweetshop/api/internal/core/port"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

type UserRepository struct {
	*BaseRepository[document.UserDocument]
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) port.UserPort {
	repo := &UserRepository{
		BaseRepository: NewBaseRepository[document.UserDocument](db, "users"),
		collection:     db.Collection("users"),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": "users",
		})
	}

	return repo
}

func (r *UserRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID != "" {
		return errors.New("cannot create user with existing ID")
	}

	doc := document.ToUserDocument(user)
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return serviceerrors.NewConflictError(fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return parseError(err)
	}

	user.ID = domain.ID(result.InsertedID.(primitive.ObjectID).Hex())
	user.CreatedAt = doc.CreatedAt
	user.UpdatedAt = doc.UpdatedAt

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc, err := r.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

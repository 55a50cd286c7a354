package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/api/internal/adapters/mongo/document"
	"github.com/sweetshop/api/internal/adapters/outbox"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/logger"
	"github.com/sweetshop/api/internal/core/port"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

type SweetRepository struct {
	*BaseRepository[document.SweetDocument]
	db         *mongo.Database
	collection *mongo.Collection
	outbox     outbox.Repository
}

func NewSweetRepository(db *mongo.Database, outbox outbox.Repository) port.SweetPort {
	baseRepo := NewBaseRepository[document.SweetDocument](db, "sweets")

	repo := &SweetRepository{
		BaseRepository: baseRepo,
		db:             db,
		collection:     db.Collection("sweets"),
		outbox:         outbox,
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": "sweets",
		})
	}

	return repo
}

func (r *SweetRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
		{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *SweetRepository) Create(ctx context.Context, sweet *domain.Sweet) error {
	if sweet.ID != "" {
		return errors.New("cannot create sweet with existing ID")
	}

	doc := document.ToSweetDocument(sweet)
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return serviceerrors.NewConflictError(fmt.Sprintf("sweet with name %q already exists", sweet.Name))
		}
		return parseError(err)
	}

	sweet.ID = domain.ID(result.InsertedID.(primitive.ObjectID).Hex())
	sweet.CreatedAt = doc.CreatedAt
	sweet.UpdatedAt = doc.UpdatedAt

	return nil
}

func (r *SweetRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Sweet, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *SweetRepository) List(ctx context.Context, limit, offset int64) ([]*domain.Sweet, int64, error) {
	return r.findPage(ctx, bson.M{}, limit, offset)
}

func (r *SweetRepository) Search(ctx context.Context, filter domain.SweetFilter, limit, offset int64) ([]*domain.Sweet, int64, error) {
	return r.findPage(ctx, searchQuery(filter), limit, offset)
}

// searchQuery translates a domain filter into a mongo query. Name matches as
// a case-insensitive substring, category as a case-insensitive exact match.
func searchQuery(filter domain.SweetFilter) bson.M {
	query := bson.M{}

	if filter.Name != nil {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(*filter.Name), "$options": "i"}
	}
	if filter.Category != nil {
		query["category"] = bson.M{
			"$regex":   fmt.Sprintf("^%s$", regexp.QuoteMeta(*filter.Category)),
			"$options": "i",
		}
	}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = int64(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		price["$lte"] = int64(*filter.MaxPrice)
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

func (r *SweetRepository) findPage(ctx context.Context, query bson.M, limit, offset int64) ([]*domain.Sweet, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, parseError(err)
	}

	opts := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	docs, err := r.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	sweets := make([]*domain.Sweet, len(docs))
	for i, doc := range docs {
		sweets[i] = doc.ToDomain()
	}

	return sweets, total, nil
}

func (r *SweetRepository) Update(ctx context.Context, id domain.ID, patch domain.SweetPatch) (*domain.Sweet, error) {
	objectID, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, parseError(err)
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = int64(*patch.Price)
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document.SweetDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("sweet %s not found", id))
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, serviceerrors.NewConflictError(fmt.Sprintf("sweet with name %q already exists", *patch.Name))
		}
		return nil, parseError(err)
	}

	return doc.ToDomain(), nil
}

func (r *SweetRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, string(id))
}

// DecrementQuantity relies on a single conditional FindOneAndUpdate: the
// quantity predicate and the $inc are evaluated atomically by mongo, so two
// concurrent purchases can never both succeed past the available stock.
func (r *SweetRepository) DecrementQuantity(ctx context.Context, id domain.ID, qty int) (*domain.Sweet, error) {
	objectID, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, parseError(err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document.SweetDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "quantity": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"quantity": -qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.classifyQuantityMiss(ctx, id)
		}
		return nil, parseError(err)
	}

	return doc.ToDomain(), nil
}

func (r *SweetRepository) IncrementQuantity(ctx context.Context, id domain.ID, qty int) (*domain.Sweet, error) {
	objectID, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, parseError(err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document.SweetDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$inc": bson.M{"quantity": qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("sweet %s not found", id))
		}
		return nil, parseError(err)
	}

	return doc.ToDomain(), nil
}

// classifyQuantityMiss distinguishes a missing sweet from insufficient stock
// after a conditional update matched nothing. The extra read is advisory
// only, the atomicity of the decrement does not depend on it.
func (r *SweetRepository) classifyQuantityMiss(ctx context.Context, id domain.ID) error {
	_, err := r.FindByID(ctx, string(id))
	if err != nil {
		return err
	}
	return serviceerrors.NewInsufficientStockError(fmt.Sprintf("insufficient stock for sweet %s", id))
}

func (r *SweetRepository) RecordInventoryEvent(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.outbox.Insert(ctx, outbox.Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
	})
}

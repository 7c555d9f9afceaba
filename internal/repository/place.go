package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/placeshare/internal/database"
	"github.com/deppfellow/placeshare/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlaceRepository stores places in the "places" collection.
type PlaceRepository struct {
	collection *mongo.Collection
}

func NewPlaceRepository(db *database.Database) *PlaceRepository {
	return &PlaceRepository{collection: db.Collection(database.PlacesCollection)}
}

func (r *PlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var place model.Place
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&place); err != nil {
		return nil, notFound(err)
	}
	return &place, nil
}

func (r *PlaceRepository) FindByCreator(ctx context.Context, creatorID string) ([]model.Place, error) {
	oid, err := ParseID(creatorID)
	if err != nil {
		return []model.Place{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"creator": oid})
	if err != nil {
		return nil, fmt.Errorf("finding places of %s: %w", creatorID, err)
	}

	places := []model.Place{}
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("decoding places of %s: %w", creatorID, err)
	}
	return places, nil
}

func (r *PlaceRepository) Create(ctx context.Context, place *model.Place) (*model.Place, error) {
	result, err := r.collection.InsertOne(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("inserting place: %w", err)
	}

	created := *place
	created.ID = toObjectID(result.InsertedID, created.ID)
	return &created, nil
}

func (r *PlaceRepository) UpdateByID(ctx context.Context, id, title, description string) (*model.Place, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"title": title, "description": description}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var place model.Place
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&place); err != nil {
		return nil, notFound(err)
	}
	return &place, nil
}

func (r *PlaceRepository) DeleteByID(ctx context.Context, id string) (*model.Place, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var place model.Place
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&place); err != nil {
		return nil, notFound(err)
	}
	return &place, nil
}

// notFound maps the driver's "no documents" error to ErrNotFound and wraps
// everything else.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("querying document: %w", err)
}

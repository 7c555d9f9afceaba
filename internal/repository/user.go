package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/placeshare/internal/database"
	"github.com/deppfellow/placeshare/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository stores users in the "users" collection. Email uniqueness
// is enforced by the unique index created by database.EnsureIndexes.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(database.UsersCollection)}
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created := *user
	if created.Places == nil {
		created.Places = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, created)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateEmail, err)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	created.ID = toObjectID(result.InsertedID, created.ID)
	return &created, nil
}

// toObjectID returns the id the driver assigned, or fallback when the
// inserted id has another type.
func toObjectID(inserted interface{}, fallback primitive.ObjectID) primitive.ObjectID {
	if oid, ok := inserted.(primitive.ObjectID); ok {
		return oid
	}
	return fallback
}

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollectionName is the MongoDB collection holding user documents.
const DefaultCollectionName = "users"

// mongoUser is the stored document. Sessions are embedded and the array is
// always present, so $push and $pull never meet a null field.
type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Name      string             `bson:"name,omitempty"`
	Sessions  []models.Session   `bson:"sessions"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *mongoUser) toModel() *models.User {
	sessions := d.Sessions
	if sessions == nil {
		sessions = make([]models.Session, 0)
	}
	return &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Name:         d.Name,
		Sessions:     sessions,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoRepository stores one document per user. Session mutations are single
// update operators on that document, which MongoDB applies atomically.
type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(DefaultCollectionName), now: time.Now}
}

// EnsureIndexes creates the unique email index. Safe to call repeatedly.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *MongoRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := mongoUser{
		Email:     user.Email,
		Password:  user.PasswordHash,
		Name:      user.Name,
		Sessions:  user.Clone().Sessions,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	return doc.toModel(), nil
}

func (r *MongoRepository) AddSession(ctx context.Context, userID string, s models.Session) (*models.User, error) {
	return r.update(ctx, userID, bson.M{"$push": bson.M{"sessions": s}})
}

func (r *MongoRepository) RemoveSessions(ctx context.Context, userID string, token string) (*models.User, error) {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"sessions": bson.M{"token": token}}})
}

func (r *MongoRepository) update(ctx context.Context, userID string, change bson.M) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	change["$set"] = bson.M{"updated_at": r.now().UTC().Truncate(time.Millisecond)}

	var doc mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, change,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc mongoUser
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

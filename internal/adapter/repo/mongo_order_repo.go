package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepo stores each order as one document with its line items
// embedded, so a write lands whole or not at all.
type MongoOrderRepo struct{ col *mongo.Collection }

func NewMongoOrderRepo(db *mongo.Database) *MongoOrderRepo {
	return &MongoOrderRepo{col: db.Collection(ordersCollection)}
}

func (r *MongoOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	doc, err := newOrderDoc(*o)
	if err != nil {
		return fmt.Errorf("map order: %w", err)
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	o.ID = doc.ID.Hex()
	return nil
}

func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Order{}, err
	}
	var doc orderDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, usecase.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return doc.toDomain()
}

func (r *MongoOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.Order{}, nil
	}
	return r.find(ctx, bson.M{"user": oid})
}

func (r *MongoOrderRepo) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		o, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatus touches only status; line item snapshots are never rewritten.
func (r *MongoOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Order{}, err
	}
	var doc orderDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, usecase.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return doc.toDomain()
}

var _ usecase.OrderRepo = (*MongoOrderRepo)(nil)

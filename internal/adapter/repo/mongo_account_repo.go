package repo

import (
	"context"
	"errors"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAccountRepo struct{ col *mongo.Collection }

func NewMongoAccountRepo(db *mongo.Database) *MongoAccountRepo {
	return &MongoAccountRepo{col: db.Collection(accountsCollection)}
}

// Create relies on the unique email index to detect duplicates.
func (r *MongoAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	doc := accountDoc{
		ID:        primitive.NewObjectID(),
		Name:      a.Name,
		Email:     a.Email,
		Password:  a.PasswordHash,
		Role:      a.Role.String(),
		CreatedAt: a.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrAccountExists
		}
		return err
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Account{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *MongoAccountRepo) findOne(ctx context.Context, filter bson.M) (domain.Account, error) {
	var doc accountDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Account{}, usecase.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoAccountRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Account{}, err
	}
	var doc accountDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": role.String()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Account{}, usecase.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoAccountRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

var _ usecase.AccountRepo = (*MongoAccountRepo)(nil)

package repo

import (
	"context"
	"errors"
	"sort"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProductRepo struct{ col *mongo.Collection }

func NewMongoProductRepo(db *mongo.Database) *MongoProductRepo {
	return &MongoProductRepo{col: db.Collection(productsCollection)}
}

// FindByID reads the current catalog entry. There is no isolation with a
// concurrent admin edit: the caller sees whichever write landed last.
func (r *MongoProductRepo) FindByID(ctx context.Context, id string) (domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Product{}, err
	}
	var doc productDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, usecase.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return doc.toDomain()
}

func (r *MongoProductRepo) List(ctx context.Context, f usecase.ProductFilter) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(newestFirst).SetSkip(f.Skip)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, nil
}

func (r *MongoProductRepo) Categories(ctx context.Context) ([]string, error) {
	vals, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *MongoProductRepo) Create(ctx context.Context, p *domain.Product) error {
	doc, err := newProductDoc(*p)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *MongoProductRepo) Update(ctx context.Context, p domain.Product) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	doc, err := newProductDoc(p)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"price":       doc.Price,
		"category":    doc.Category,
		"image":       doc.Image,
		"stock":       doc.Stock,
		"rating":      doc.Rating,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MongoProductRepo) Delete(ctx context.Context, id string) error {
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

func (r *MongoProductRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// InsertMany keeps the ids already set on products.
func (r *MongoProductRepo) InsertMany(ctx context.Context, products []domain.Product) error {
	docs := make([]any, 0, len(products))
	for _, p := range products {
		doc, err := newProductDoc(p)
		if err != nil {
			return err
		}
		if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
			doc.ID = oid
		} else {
			doc.ID = primitive.NewObjectID()
		}
		docs = append(docs, doc)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

var _ usecase.ProductRepo = (*MongoProductRepo)(nil)

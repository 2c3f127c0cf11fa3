package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

const (
	categoryCollection = "categories"
	genreCollection    = "genres"
)

// Categories and genres share one document shape and one set of operations;
// slugColl carries the collection plus the not-found sentinel to report.
type slugDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Slug string             `bson:"slug"`
}

type slugColl struct {
	coll     *mongo.Collection
	notFound error
}

func (s slugColl) list(ctx context.Context, search string, page, limit int) ([]slugDoc, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["name"] = searchRegex(search)
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.coll.Name(), err)
	}

	cur, err := s.coll.Find(ctx, filter, listOptions(page, limit).SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.coll.Name(), err)
	}
	defer cur.Close(ctx)

	var docs []slugDoc
	for cur.Next(ctx) {
		var d slugDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", s.coll.Name(), err)
		}
		docs = append(docs, d)
	}
	return docs, total, cur.Err()
}

func (s slugColl) findBySlug(ctx context.Context, slug string) (*slugDoc, error) {
	var d slugDoc
	if err := s.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.notFound
		}
		return nil, fmt.Errorf("find %s: %w", s.coll.Name(), err)
	}
	return &d, nil
}

func (s slugColl) create(ctx context.Context, name, slug string) (*slugDoc, error) {
	res, err := s.coll.InsertOne(ctx, slugDoc{Name: name, Slug: slug})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// slug already taken
			return nil, domain.ErrValidation
		}
		return nil, fmt.Errorf("insert %s: %w", s.coll.Name(), err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return &slugDoc{ID: id, Name: name, Slug: slug}, nil
}

func (s slugColl) delete(ctx context.Context, slug string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return s.notFound
	}
	return nil
}

type MongoCategoryRepository struct {
	s slugColl
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{s: slugColl{coll: db.Collection(categoryCollection), notFound: domain.ErrCategoryNotFound}}
}

func (r *MongoCategoryRepository) List(ctx context.Context, search string, page, limit int) ([]domain.Category, int64, error) {
	docs, total, err := r.s.list(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Category{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug})
	}
	return out, total, nil
}

func (r *MongoCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	d, err := r.s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}, nil
}

func (r *MongoCategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	d, err := r.s.create(ctx, c.Name, c.Slug)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, slug string) error {
	return r.s.delete(ctx, slug)
}

type MongoGenreRepository struct {
	s slugColl
}

func NewGenreRepository(db *mongo.Database) *MongoGenreRepository {
	return &MongoGenreRepository{s: slugColl{coll: db.Collection(genreCollection), notFound: domain.ErrGenreNotFound}}
}

func (r *MongoGenreRepository) List(ctx context.Context, search string, page, limit int) ([]domain.Genre, int64, error) {
	docs, total, err := r.s.list(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Genre, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Genre{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug})
	}
	return out, total, nil
}

func (r *MongoGenreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	d, err := r.s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &domain.Genre{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}, nil
}

func (r *MongoGenreRepository) Create(ctx context.Context, g *domain.Genre) (*domain.Genre, error) {
	d, err := r.s.create(ctx, g.Name, g.Slug)
	if err != nil {
		return nil, err
	}
	return &domain.Genre{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}, nil
}

func (r *MongoGenreRepository) Delete(ctx context.Context, slug string) error {
	return r.s.delete(ctx, slug)
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

const titleCollection = "titles"

type MongoTitleRepository struct {
	coll *mongo.Collection
}

func NewTitleRepository(db *mongo.Database) *MongoTitleRepository {
	return &MongoTitleRepository{coll: db.Collection(titleCollection)}
}

// Category and genres are denormalized into the title document; slugs are
// stable references and the catalog is tiny, so no joins are needed on read.
type titleRef struct {
	Name string `bson:"name"`
	Slug string `bson:"slug"`
}

type mongoTitle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Year        int                `bson:"year"`
	Description string             `bson:"description,omitempty"`
	Category    titleRef           `bson:"category"`
	Genres      []titleRef         `bson:"genres"`
}

func (mt *mongoTitle) toDomain() *domain.Title {
	genres := make([]domain.Genre, 0, len(mt.Genres))
	for _, g := range mt.Genres {
		genres = append(genres, domain.Genre{Name: g.Name, Slug: g.Slug})
	}
	return &domain.Title{
		ID:          mt.ID.Hex(),
		Name:        mt.Name,
		Year:        mt.Year,
		Description: mt.Description,
		Category:    domain.Category{Name: mt.Category.Name, Slug: mt.Category.Slug},
		Genres:      genres,
	}
}

func titleDoc(t *domain.Title) mongoTitle {
	genres := make([]titleRef, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, titleRef{Name: g.Name, Slug: g.Slug})
	}
	return mongoTitle{
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Category:    titleRef{Name: t.Category.Name, Slug: t.Category.Slug},
		Genres:      genres,
	}
}

func (r *MongoTitleRepository) List(ctx context.Context, filter ports.TitleFilter, page, limit int) ([]domain.Title, int64, error) {
	query := bson.M{}
	if filter.CategorySlug != "" {
		query["category.slug"] = filter.CategorySlug
	}
	if filter.GenreSlug != "" {
		query["genres.slug"] = filter.GenreSlug
	}
	if filter.Name != "" {
		query["name"] = searchRegex(filter.Name)
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	cur, err := r.coll.Find(ctx, query, listOptions(page, limit).SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	defer cur.Close(ctx)

	var titles []domain.Title
	for cur.Next(ctx) {
		var mt mongoTitle
		if err := cur.Decode(&mt); err != nil {
			return nil, 0, fmt.Errorf("decode title: %w", err)
		}
		titles = append(titles, *mt.toDomain())
	}
	return titles, total, cur.Err()
}

func (r *MongoTitleRepository) FindByID(ctx context.Context, id string) (*domain.Title, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTitleNotFound
	}

	var mt mongoTitle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTitleNotFound
		}
		return nil, fmt.Errorf("find title: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTitleRepository) Create(ctx context.Context, t *domain.Title) (*domain.Title, error) {
	res, err := r.coll.InsertOne(ctx, titleDoc(t))
	if err != nil {
		return nil, fmt.Errorf("insert title: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	created := *t
	created.ID = id.Hex()
	return &created, nil
}

func (r *MongoTitleRepository) Update(ctx context.Context, t *domain.Title) (*domain.Title, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, domain.ErrTitleNotFound
	}

	doc := titleDoc(t)
	var mt mongoTitle
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        doc.Name,
			"year":        doc.Year,
			"description": doc.Description,
			"category":    doc.Category,
			"genres":      doc.Genres,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTitleNotFound
		}
		return nil, fmt.Errorf("update title: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTitleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTitleNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTitleNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

const (
	reviewCollection  = "reviews"
	commentCollection = "comments"
)

type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection(reviewCollection)}
}

type mongoReview struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	TitleID        string             `bson:"title_id"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Text           string             `bson:"text"`
	Score          int                `bson:"score"`
	PubDate        int64              `bson:"pub_date"`
}

func (mr *mongoReview) toDomain() *domain.Review {
	return &domain.Review{
		ID:             mr.ID.Hex(),
		TitleID:        mr.TitleID,
		AuthorID:       mr.AuthorID,
		AuthorUsername: mr.AuthorUsername,
		Text:           mr.Text,
		Score:          mr.Score,
		PubDate:        unixToTime(mr.PubDate),
	}
}

// Insert adds a review. Uniqueness of (title_id, author_id) is enforced by
// the compound index, not by a prior existence check, so concurrent
// submissions cannot both land: exactly one wins and the rest surface as
// domain.ErrDuplicateReview.
func (r *MongoReviewRepository) Insert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	pub := review.PubDate
	if pub.IsZero() {
		pub = time.Now().UTC()
	}
	doc := mongoReview{
		TitleID:        review.TitleID,
		AuthorID:       review.AuthorID,
		AuthorUsername: review.AuthorUsername,
		Text:           review.Text,
		Score:          review.Score,
		PubDate:        pub.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	created := *review
	created.ID = id.Hex()
	created.PubDate = unixToTime(doc.PubDate)
	return &created, nil
}

func (r *MongoReviewRepository) FindByID(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	var mr mongoReview
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "title_id": titleID}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoReviewRepository) ListByTitle(ctx context.Context, titleID string, page, limit int) ([]domain.Review, int64, error) {
	filter := bson.M{"title_id": titleID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, listOptions(page, limit).SetSort(bson.D{{Key: "pub_date", Value: 1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var reviews []domain.Review
	for cur.Next(ctx) {
		var mr mongoReview
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, *mr.toDomain())
	}
	return reviews, total, cur.Err()
}

func (r *MongoReviewRepository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	// text and score only; the (title, author) pair is immutable
	var mr mongoReview
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": review.Text, "score": review.Score}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoReviewRepository) Delete(ctx context.Context, titleID, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "title_id": titleID})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *MongoReviewRepository) AverageScore(ctx context.Context, titleID string) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"title_id": titleID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$score"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate scores: %w", err)
	}
	defer cur.Close(ctx)

	var agg struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&agg); err != nil {
			return 0, 0, fmt.Errorf("decode aggregate: %w", err)
		}
	}
	return agg.Avg, agg.Count, cur.Err()
}

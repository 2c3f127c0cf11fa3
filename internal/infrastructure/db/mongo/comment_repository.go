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

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentCollection)}
}

type mongoComment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ReviewID       string             `bson:"review_id"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Text           string             `bson:"text"`
	PubDate        int64              `bson:"pub_date"`
}

func (mc *mongoComment) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:             mc.ID.Hex(),
		ReviewID:       mc.ReviewID,
		AuthorID:       mc.AuthorID,
		AuthorUsername: mc.AuthorUsername,
		Text:           mc.Text,
		PubDate:        unixToTime(mc.PubDate),
	}
}

func (r *MongoCommentRepository) Insert(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	pub := comment.PubDate
	if pub.IsZero() {
		pub = time.Now().UTC()
	}
	doc := mongoComment{
		ReviewID:       comment.ReviewID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: comment.AuthorUsername,
		Text:           comment.Text,
		PubDate:        pub.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	created := *comment
	created.ID = id.Hex()
	created.PubDate = unixToTime(doc.PubDate)
	return &created, nil
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, reviewID, commentID string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var mc mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "review_id": reviewID}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCommentRepository) ListByReview(ctx context.Context, reviewID string, page, limit int) ([]domain.Comment, int64, error) {
	filter := bson.M{"review_id": reviewID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, listOptions(page, limit).SetSort(bson.D{{Key: "pub_date", Value: 1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []domain.Comment
	for cur.Next(ctx) {
		var mc mongoComment
		if err := cur.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, *mc.toDomain())
	}
	return comments, total, cur.Err()
}

func (r *MongoCommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(comment.ID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var mc mongoComment
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": comment.Text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCommentRepository) Delete(ctx context.Context, reviewID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "review_id": reviewID})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

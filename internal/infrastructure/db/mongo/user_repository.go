package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	FirstName string             `bson:"first_name,omitempty"`
	LastName  string             `bson:"last_name,omitempty"`
	Bio       string             `bson:"bio,omitempty"`
	Role      string             `bson:"role"`
	Active    bool               `bson:"active"`
	CodeEpoch int64              `bson:"code_epoch"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:        mu.ID.Hex(),
		Username:  mu.Username,
		Email:     mu.Email,
		FirstName: mu.FirstName,
		LastName:  mu.LastName,
		Bio:       mu.Bio,
		Role:      mu.Role,
		Active:    mu.Active,
		CodeEpoch: mu.CodeEpoch,
		CreatedAt: unixToTime(mu.CreatedAt),
		UpdatedAt: unixToTime(mu.UpdatedAt),
	}
}

// GetOrCreate performs a single atomic upsert keyed on the exact
// (username, email) pair. When either field is already taken by a record
// holding a different pair, the unique index rejects the insert and the
// duplicate-key error maps to domain.ErrUserExists.
//
// Two racing upserts for the same pair can both miss the match and both
// attempt the insert; the loser's duplicate-key error does not mean the
// pair is taken by someone else. Re-reading the exact pair disambiguates:
// a match means the race was benign and signup stays idempotent.
func (r *MongoUserRepository) GetOrCreate(ctx context.Context, username, email string) (*domain.User, bool, error) {
	now := time.Now().UTC().Unix()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username, "email": email},
		bson.M{
			"$setOnInsert": bson.M{
				"role":       domain.RoleUser,
				"active":     false,
				"code_epoch": int64(0),
				"created_at": now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			var mu mongoUser
			findErr := r.coll.FindOne(ctx, bson.M{"username": username, "email": email}).Decode(&mu)
			if findErr == nil {
				return mu.toDomain(), false, nil
			}
			if findErr == mongo.ErrNoDocuments {
				return nil, false, domain.ErrUserExists
			}
			return nil, false, fmt.Errorf("find user after duplicate upsert: %w", findErr)
		}
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}

	user, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	return user, res.UpsertedCount == 1, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC().Unix()
	doc := mongoUser{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
		Active:    user.Active,
		CodeEpoch: user.CodeEpoch,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByUsername(ctx, user.Username)
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"bio":        user.Bio,
		"role":       user.Role,
		"updated_at": time.Now().UTC().Unix(),
	}}

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) List(ctx context.Context, search string, page, limit int) ([]domain.User, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["username"] = searchRegex(search)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, listOptions(page, limit).SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *mu.toDomain())
	}
	return users, total, cur.Err()
}

// MarkExchanged activates the account and bumps the code epoch in one
// update, so the confirmation code that was just accepted stops validating.
func (r *MongoUserRepository) MarkExchanged(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set": bson.M{"active": true, "updated_at": time.Now().UTC().Unix()},
			"$inc": bson.M{"code_epoch": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("mark exchanged: %w", err)
	}
	return mu.toDomain(), nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

// listOptions converts 1-based page/limit into Find options with sane caps.
func listOptions(page, limit int) *options.FindOptions {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}

// searchRegex builds a case-insensitive substring match from user input.
// The input is quoted so regex metacharacters are literal; an unescaped "("
// would otherwise make the server reject the whole query.
func searchRegex(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

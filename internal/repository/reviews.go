package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/benknight/cocolist/internal/entity"
)

// ErrReviewNotFound is returned when a review id does not match a document.
var ErrReviewNotFound = errors.New("review not found")

// ReviewStats summarises the ratings of one business.
type ReviewStats struct {
	Count int
	Mean  float64
}

// ReviewsRepository persists business reviews.
type ReviewsRepository interface {
	Create(ctx context.Context, review entity.Review) (*entity.Review, error)
	ListByBusiness(ctx context.Context, businessID string, limit int64) ([]entity.Review, error)
	Stats(ctx context.Context, businessID string) (ReviewStats, error)
	Delete(ctx context.Context, id string) error
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BusinessID string             `bson:"businessId"`
	UserID     string             `bson:"userId"`
	UserName   string             `bson:"userName"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d reviewDocument) toEntity() entity.Review {
	return entity.Review{
		ID:         d.ID.Hex(),
		BusinessID: d.BusinessID,
		UserID:     d.UserID,
		UserName:   d.UserName,
		Rating:     d.Rating,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
	}
}

// MongoReviewsRepository stores one document per review.
type MongoReviewsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoReviewsRepository binds the repository to a collection of db.
func NewMongoReviewsRepository(db *mongo.Database, collectionName string) *MongoReviewsRepository {
	return &MongoReviewsRepository{collection: db.Collection(collectionName), now: time.Now}
}

// EnsureIndexes creates the index used by ListByBusiness.
func (r *MongoReviewsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create review index: %w", err)
	}
	return nil
}

// Create inserts review, assigning its id and creation time.
func (r *MongoReviewsRepository) Create(ctx context.Context, review entity.Review) (*entity.Review, error) {
	doc := reviewDocument{
		ID:         primitive.NewObjectID(),
		BusinessID: review.BusinessID,
		UserID:     review.UserID,
		UserName:   review.UserName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  r.now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	created := doc.toEntity()
	return &created, nil
}

// ListByBusiness returns the newest reviews first. A limit of 0 returns all.
func (r *MongoReviewsRepository) ListByBusiness(ctx context.Context, businessID string, limit int64) ([]entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0)
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// Stats aggregates the count and mean rating of a business.
func (r *MongoReviewsRepository) Stats(ctx context.Context, businessID string) (ReviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"businessId": businessID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"mean":  bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return ReviewStats{}, fmt.Errorf("aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var stats ReviewStats
	if cursor.Next(ctx) {
		var row struct {
			Count int     `bson:"count"`
			Mean  float64 `bson:"mean"`
		}
		if err := cursor.Decode(&row); err != nil {
			return ReviewStats{}, fmt.Errorf("decode review stats: %w", err)
		}
		stats = ReviewStats{Count: row.Count, Mean: row.Mean}
	}
	if err := cursor.Err(); err != nil {
		return ReviewStats{}, fmt.Errorf("iterate review stats: %w", err)
	}
	return stats, nil
}

// Delete removes a review by its hex id.
func (r *MongoReviewsRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrReviewNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

var _ ReviewsRepository = (*MongoReviewsRepository)(nil)

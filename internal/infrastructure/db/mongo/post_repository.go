package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickblog/blog-api/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{db: db, col: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID        int64  `bson:"_id"`
	Title     string `bson:"title"`
	Content   string `bson:"content"`
	Published bool   `bson:"published"`
	OwnerID   int64  `bson:"owner_id"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, postsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoPost{
		ID:        id,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		OwnerID:   post.OwnerID,
		CreatedAt: post.CreatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, mapStoreError("insert post", err)
	}

	created := *post
	created.ID = id
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, mapStoreError("find post", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, mapStoreError("list posts", err)
	}
	defer cursor.Close(ctx)

	var posts []*domain.Post
	for cursor.Next(ctx) {
		var mp mongoPost
		if err := cursor.Decode(&mp); err != nil {
			return nil, mapStoreError("decode post", err)
		}
		posts = append(posts, mp.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, mapStoreError("list posts", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":     post.Title,
		"content":   post.Content,
		"published": post.Published,
	}}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return nil, mapStoreError("update post", err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapStoreError("delete post", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (mp mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:        mp.ID,
		Title:     mp.Title,
		Content:   mp.Content,
		Published: mp.Published,
		OwnerID:   mp.OwnerID,
		CreatedAt: unixToTime(mp.CreatedAt),
	}
}

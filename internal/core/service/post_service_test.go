package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quickblog/blog-api/internal/core/domain"
	"github.com/quickblog/blog-api/internal/core/ports"
)

type stubPostRepo struct {
	posts  map[int64]*domain.Post
	nextID int64
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.nextID++
	created := clonePost(post)
	created.ID = r.nextID
	r.posts[created.ID] = clonePost(created)
	return clonePost(created), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	var out []*domain.Post
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.posts[id]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) (*domain.Post, error) {
	if _, ok := r.posts[post.ID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	r.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type stubPostCache struct {
	entries       map[int64]*domain.Post
	invalidations []int64
}

func newStubPostCache() *stubPostCache {
	return &stubPostCache{entries: make(map[int64]*domain.Post)}
}

func (c *stubPostCache) Get(_ context.Context, id int64) (*domain.Post, bool) {
	p, ok := c.entries[id]
	return clonePost(p), ok
}

func (c *stubPostCache) Set(_ context.Context, post *domain.Post) {
	c.entries[post.ID] = clonePost(post)
}

func (c *stubPostCache) Invalidate(_ context.Context, id int64) {
	delete(c.entries, id)
	c.invalidations = append(c.invalidations, id)
}

func TestPostService_CreateAndGet(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), 7, ports.PostInput{
		Title:     "  Hello  ",
		Content:   " First post ",
		Published: true,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Title != "Hello" || created.Content != "First post" {
		t.Fatalf("expected trimmed fields, got %q / %q", created.Title, created.Content)
	}
	if created.OwnerID != 7 {
		t.Fatalf("expected owner 7, got %d", created.OwnerID)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != "Hello" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestPostService_Get_NotFound(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), nil, zerolog.Nop())

	if _, err := svc.Get(context.Background(), 404); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Get_CacheFlow(t *testing.T) {
	repo := newStubPostRepo()
	cache := newStubPostCache()
	svc := NewPostService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, ports.PostInput{Title: "abc", Content: "def", Published: true})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// First read misses the cache and fills it.
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if _, ok := cache.entries[created.ID]; !ok {
		t.Fatalf("expected cache fill after miss")
	}

	// Second read is served from the cache even if the store loses the row.
	delete(repo.posts, created.ID)
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
}

func TestPostService_Update_TrimsAndInvalidates(t *testing.T) {
	repo := newStubPostRepo()
	cache := newStubPostCache()
	svc := NewPostService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, ports.PostInput{Title: "abc", Content: "def", Published: true})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.PostInput{
		Title:     "  New title ",
		Content:   " New content  ",
		Published: false,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "New title" || updated.Content != "New content" || updated.Published {
		t.Fatalf("unexpected post after update: %+v", updated)
	}
	if len(cache.invalidations) != 1 || cache.invalidations[0] != created.ID {
		t.Fatalf("expected cache invalidation for %d, got %v", created.ID, cache.invalidations)
	}
}

func TestPostService_Delete(t *testing.T) {
	repo := newStubPostRepo()
	cache := newStubPostCache()
	svc := NewPostService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, ports.PostInput{Title: "abc", Content: "def", Published: true})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}
	if len(cache.invalidations) != 1 {
		t.Fatalf("expected one cache invalidation, got %d", len(cache.invalidations))
	}
}

func TestPostService_List(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, nil, zerolog.Nop())

	for _, title := range []string{"one", "two", "three"} {
		if _, err := svc.Create(context.Background(), 1, ports.PostInput{Title: title, Content: "body", Published: true}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].Title != "one" || posts[2].Title != "three" {
		t.Fatalf("unexpected ordering: %+v", posts)
	}
}

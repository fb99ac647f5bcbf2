package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quickblog/blog-api/internal/api/metrics"
	"github.com/quickblog/blog-api/internal/core/domain"
	"github.com/quickblog/blog-api/internal/core/ports"
)

// PostHandler handles post CRUD. All routes sit behind the bearer guard.
type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postRequest struct {
	Title   string `json:"title"   validate:"required,min=3"`
	Content string `json:"content" validate:"required,min=3"`
	// Published defaults to true when omitted.
	Published *bool `json:"published"`
}

func (r postRequest) published() bool {
	if r.Published == nil {
		return true
	}
	return *r.Published
}

type postResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

// List returns all posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostResponse(post))
	}
	return Success(c, http.StatusOK, "Posts retrieved successfully", items)
}

// Get returns one post by id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Post id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return Success(c, http.StatusOK, "Post retrieved successfully", toPostResponse(post))
}

// Create creates a post owned by the authenticated user.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), user.ID, ports.PostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.published(),
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return Success(c, http.StatusCreated, "Post created successfully", toPostResponse(post))
}

// Update replaces a post's writable fields.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Post id"
// @Param        body  body      postRequest  true  "Post details"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Update(c.Request().Context(), id, ports.PostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.published(),
	})
	if err != nil {
		return err
	}
	return Success(c, http.StatusOK, "Post updated successfully", toPostResponse(post))
}

// Delete removes a post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Post id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return Success(c, http.StatusOK, "Post deleted successfully", nil)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

func toPostResponse(post *domain.Post) postResponse {
	return postResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		OwnerID:   post.OwnerID,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
	}
}

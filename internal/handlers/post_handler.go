package handlers

import (
	"log/slog"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/middleware"
	"github.com/fatemaakther1/Social-Media-App/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests related to posts.
type PostHandler struct {
	postService *services.PostService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    newValidator(),
		logger:      logger,
	}
}

// RegisterRoutes registers the post routes. Reads are public.
func (h *PostHandler) RegisterRoutes(router fiber.Router, requireSession fiber.Handler) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.GetAllPosts)
	postRoutes.Get("/:id", h.GetPostByID)
	postRoutes.Post("/", requireSession, h.CreatePost)
	postRoutes.Put("/:id", requireSession, h.UpdatePost)
	postRoutes.Delete("/:id", requireSession, h.DeletePost)

	router.Get("/users/:userId/posts", h.GetPostsByUser)
}

// PostRequest represents the request body for creating or updating a post.
type PostRequest struct {
	WrittenText   string `json:"writtenText" validate:"max=5000"`
	MediaLocation string `json:"mediaLocation" validate:"max=500"`
}

// paramID reads a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidRequest("Invalid " + name)
	}
	return uint(id), nil
}

// GetAllPosts returns the feed.
func (h *PostHandler) GetAllPosts(c *fiber.Ctx) error {
	posts, err := h.postService.List()
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(posts)
}

// GetPostByID returns a single post.
func (h *PostHandler) GetPostByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	post, err := h.postService.Get(id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(post)
}

// GetPostsByUser returns the posts of one author.
func (h *PostHandler) GetPostsByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	posts, err := h.postService.ListByUser(userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(posts)
}

// CreatePost publishes a post for the signed-in user.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}
	post, err := h.postService.Create(middleware.UserID(c), services.PostInput{
		WrittenText:   req.WrittenText,
		MediaLocation: req.MediaLocation,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost replaces the content of one of the signed-in user's posts.
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	var req PostRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}
	post, err := h.postService.Update(middleware.UserID(c), id, services.PostInput{
		WrittenText:   req.WrittenText,
		MediaLocation: req.MediaLocation,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(post)
}

// DeletePost deletes one of the signed-in user's posts.
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.postService.Delete(middleware.UserID(c), id); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

package handlers

import (
	"log/slog"

	"github.com/fatemaakther1/Social-Media-App/internal/middleware"
	"github.com/fatemaakther1/Social-Media-App/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests related to comments.
type CommentHandler struct {
	commentService *services.CommentService
	validate       *validator.Validate
	logger         *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       newValidator(),
		logger:         logger,
	}
}

// RegisterRoutes registers the comment routes.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, requireSession fiber.Handler) {
	router.Get("/posts/:postId/comments", h.GetPostComments)
	router.Post("/posts/:postId/comments", requireSession, h.CreateComment)
	router.Get("/comments/:id", h.GetComment)
	router.Put("/comments/:id", requireSession, h.UpdateComment)
	router.Delete("/comments/:id", requireSession, h.DeleteComment)
	router.Get("/my-comments", requireSession, h.GetMyComments)
}

// CommentRequest represents the request body for creating or updating a comment.
type CommentRequest struct {
	CommentText string `json:"commentText" validate:"required,max=2000"`
}

// GetPostComments lists a post's comments.
func (h *CommentHandler) GetPostComments(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	comments, err := h.commentService.ListByPost(postID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"count":    len(comments),
		"comments": comments,
	})
}

// GetComment returns a single comment.
func (h *CommentHandler) GetComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	comment, err := h.commentService.Get(id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(comment)
}

// CreateComment adds a comment by the signed-in user.
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	var req CommentRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}
	comment, err := h.commentService.Create(middleware.UserID(c), postID, req.CommentText)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment edits one of the signed-in user's comments.
func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	var req CommentRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}
	comment, err := h.commentService.Update(middleware.UserID(c), id, req.CommentText)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(comment)
}

// DeleteComment removes one of the signed-in user's comments.
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.commentService.Delete(middleware.UserID(c), id); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}

// GetMyComments lists the signed-in user's comments.
func (h *CommentHandler) GetMyComments(c *fiber.Ctx) error {
	comments, err := h.commentService.ListByUser(middleware.UserID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"count":    len(comments),
		"comments": comments,
	})
}

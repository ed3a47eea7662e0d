package handlers

import (
	"log/slog"

	"github.com/fatemaakther1/Social-Media-App/internal/middleware"
	"github.com/fatemaakther1/Social-Media-App/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LikeHandler handles HTTP requests related to likes.
type LikeHandler struct {
	likeService *services.LikeService
	logger      *slog.Logger
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(likeService *services.LikeService, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		logger:      logger,
	}
}

// RegisterRoutes registers the like routes.
func (h *LikeHandler) RegisterRoutes(router fiber.Router, requireSession fiber.Handler) {
	router.Post("/posts/:postId/like", requireSession, h.ToggleLike)
	router.Get("/posts/:postId/likes", h.GetPostLikes)
	router.Get("/posts/:postId/like-status", requireSession, h.GetLikeStatus)
	router.Get("/my-likes", requireSession, h.GetMyLikes)
}

// ToggleLike likes or unlikes a post for the signed-in user.
func (h *LikeHandler) ToggleLike(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	res, err := h.likeService.Toggle(middleware.UserID(c), postID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if !res.Liked {
		return c.JSON(fiber.Map{
			"message": "Post unliked",
			"liked":   false,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post liked",
		"liked":   true,
		"like":    res.Like,
	})
}

// GetPostLikes lists the likes on a post.
func (h *LikeHandler) GetPostLikes(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	likes, err := h.likeService.ListByPost(postID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"count": len(likes),
		"likes": likes,
	})
}

// GetLikeStatus reports whether the signed-in user likes a post.
func (h *LikeHandler) GetLikeStatus(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return writeError(c, h.logger, err)
	}
	liked, err := h.likeService.Status(middleware.UserID(c), postID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// GetMyLikes lists the signed-in user's likes.
func (h *LikeHandler) GetMyLikes(c *fiber.Ctx) error {
	likes, err := h.likeService.ListByUser(middleware.UserID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"count": len(likes),
		"likes": likes,
	})
}

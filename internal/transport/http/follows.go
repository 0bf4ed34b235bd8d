package http

import (
	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) Follow(c *fiber.Ctx) error {
	var req models.FollowRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.FollowerID == uuid.Nil || req.FollowingID == uuid.Nil {
		return apperr.Validation("follower_id and following_id are required")
	}

	follow, err := h.follows.Follow(c.Context(), req.FollowerID, req.FollowingID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "now following",
		"data":    follow,
	})
}

func (h *Handler) Unfollow(c *fiber.Ctx) error {
	followerID, err := parseUUIDParam(c, "follower_id")
	if err != nil {
		return err
	}
	followingID, err := parseUUIDParam(c, "following_id")
	if err != nil {
		return err
	}

	if err := h.follows.Unfollow(c.Context(), followerID, followingID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "unfollowed"})
}

func (h *Handler) CheckFollowing(c *fiber.Ctx) error {
	followerID, err := parseUUIDParam(c, "follower_id")
	if err != nil {
		return err
	}
	followingID, err := parseUUIDParam(c, "following_id")
	if err != nil {
		return err
	}

	following, err := h.follows.IsFollowing(c.Context(), followerID, followingID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"is_following": following})
}

func (h *Handler) GetFollowers(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	followers, err := h.follows.Followers(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followers, "count": len(followers)})
}

func (h *Handler) GetFollowing(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	following, err := h.follows.Following(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": following, "count": len(following)})
}

func (h *Handler) GetFollowStats(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	stats, err := h.follows.Stats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

package http

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := h.notifications.List(c.Context(), userID, unreadOnly)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": notifications, "count": len(notifications)})
}

func (h *Handler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	count, err := h.notifications.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := parseUUIDParam(c, "notification_id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Context(), notificationID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "notification marked as read"})
}

func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkAllRead(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "all notifications marked as read"})
}

func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := parseUUIDParam(c, "notification_id")
	if err != nil {
		return err
	}

	if err := h.notifications.Delete(c.Context(), notificationID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "notification deleted"})
}

func (h *Handler) ClearNotifications(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.notifications.ClearAll(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "all notifications cleared"})
}

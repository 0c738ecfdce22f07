package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyNotifications lists the caller's notifications, newest first.
// ?belum_dibaca=true restricts to unread ones.
func (s *Server) GetMyNotifications(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("belum_dibaca", false)
	notifications, err := s.notificationService.ListForUser(c.Context(), callerID(c), unreadOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notifications)
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.Context(), callerID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// GetOnlineUsers reports which users currently hold a live notification
// socket. Reviewers use it as the online indicator next to the queue.
func (s *Server) GetOnlineUsers(c *fiber.Ctx) error {
	ids := s.hub.OnlineUserIDs(c.Context())
	return c.JSON(fiber.Map{
		"user_ids": ids,
		"total":    len(ids),
	})
}

// MarkAllNotificationsRead marks every notification of the caller as read.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.Context(), callerID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

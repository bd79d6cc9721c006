package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/notification"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/realtime"
)

const sseKeepAliveInterval = 30 * time.Second

type NotificationHandler struct {
	notificationService notification.Service
	realtimeService     realtime.Service
}

func NewNotificationHandler(notificationService notification.Service, realtimeService realtime.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		realtimeService:     realtimeService,
	}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notificationService.List(c.Context(), middleware.GetCurrentUserID(c), unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.GetUnreadCount(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllAsRead(c.Context(), middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) MarkActionTaken(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkActionTaken(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Notification updated"})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.Delete(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

// Stream pushes the user's notifications over server-sent events. The
// subscription lives until the client disconnects.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(context.Background())

	events, err := h.realtimeService.Subscribe(ctx, userID)
	if err != nil {
		cancel()
		return err
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		keepAlive := time.NewTicker(sseKeepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case notif, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(notif)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: notification\ndata: %s\n\n", data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

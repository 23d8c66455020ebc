package rest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/usergate/usergate"
)

type AvatarController struct {
	Cache *usergate.AvatarCache
}

func (c *AvatarController) InstallTo(app *fiber.App) {
	app.Get("/user/:user_id/avatar", c.serveAvatar)
	app.Delete("/user/:user_id/avatar", c.serveDeleteAvatar)
}

func (c *AvatarController) serveAvatar(ctx *fiber.Ctx) error {
	userId, err := userIdParam(ctx)
	if err != nil {
		return err
	}

	avatar, err := c.Cache.GetOrFetch(ctx.Context(), usergate.UserId(userId))
	if err != nil {
		if errors.Is(err, usergate.ErrUpstreamUnavailable) {
			requestLog(ctx).WithError(err).Infoln("Avatar upstream unavailable.")
			return fiber.NewError(fiber.StatusBadRequest, "could not complete request")
		}
		// cache inconsistency and store failures are server faults
		return fmt.Errorf("get or fetch avatar: %w", err)
	}

	type AvatarResponse struct {
		Base64 string `json:"base64"`
		Cached bool   `json:"cached"`
	}
	return ctx.JSON(AvatarResponse{Base64: avatar.Content, Cached: avatar.FromCache})
}

func (c *AvatarController) serveDeleteAvatar(ctx *fiber.Ctx) error {
	userId, err := userIdParam(ctx)
	if err != nil {
		return err
	}

	err = c.Cache.Delete(ctx.Context(), usergate.UserId(userId))
	if err != nil {
		if errors.Is(err, usergate.ErrAvatarNotCached) {
			return fiber.NewError(fiber.StatusBadRequest,
				"could not delete the avatar, it was not cached before")
		}
		return fmt.Errorf("delete avatar: %w", err)
	}
	return ctx.JSON(map[string]bool{"ok": true})
}

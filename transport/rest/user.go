package rest

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/usergate/usergate"
	"github.com/usergate/usergate/event"
	"github.com/usergate/usergate/mail"
)

type UserController struct {
	Store              usergate.UserStore
	Directory          usergate.Directory
	NotifyAdmin        mail.Notifier
	PublishUserCreated event.UserCreatedPublisher
}

func (c *UserController) InstallTo(app *fiber.App) {
	app.Post("/users", c.serveCreateUser)
	app.Get("/user/:user_id", c.serveUser)
}

func (c *UserController) serveCreateUser(ctx *fiber.Ctx) error {
	body := struct {
		Id        int64  `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		AvatarUrl string `json:"avatar"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if message, ok := validateCreateUser(body.Id, body.Email, body.FirstName, body.LastName, body.AvatarUrl); !ok {
		return fiber.NewError(fiber.StatusBadRequest, message)
	}

	err := c.Store.Create(ctx.Context(), usergate.User{
		Id:        usergate.UserId(body.Id),
		Email:     usergate.Email(body.Email),
		FirstName: body.FirstName,
		LastName:  body.LastName,
		AvatarUrl: body.AvatarUrl,
	})
	if err != nil {
		if errors.Is(err, usergate.ErrUserExists) {
			return fiber.NewError(fiber.StatusBadRequest, "user already exists")
		}
		return fiber.NewError(fiber.StatusBadRequest, "could not complete request")
	}

	// the user row is already in; notification failures fail the request
	// but are not rolled back
	if err := c.NotifyAdmin("New User!", "User "+strconv.FormatInt(body.Id, 10)+" just arrived!"); err != nil {
		requestLog(ctx).WithError(err).Warningln("Admin notify failed.")
		return fiber.NewError(fiber.StatusBadRequest, "could not complete request")
	}
	if err := c.PublishUserCreated(body.Id); err != nil {
		requestLog(ctx).WithError(err).Warningln("UserCreated publish failed.")
		return fiber.NewError(fiber.StatusBadRequest, "could not complete request")
	}

	return ctx.JSON(map[string]bool{"ok": true})
}

func validateCreateUser(id int64, email, firstName, lastName, avatarUrl string) (string, bool) {
	if id <= 0 {
		return "invalid id", false
	}
	if email == "" || !strings.Contains(email, "@") {
		return "invalid email", false
	}
	if len(firstName) < 3 || len(firstName) > 32 {
		return "invalid first_name", false
	}
	if len(lastName) < 3 || len(lastName) > 32 {
		return "invalid last_name", false
	}
	parsed, err := url.Parse(avatarUrl)
	if err != nil || parsed.Host == "" {
		return "invalid avatar", false
	}
	return "", true
}

func (c *UserController) serveUser(ctx *fiber.Ctx) error {
	userId, err := userIdParam(ctx)
	if err != nil {
		return err
	}

	user, err := c.Directory.UserById(ctx.Context(), userId)
	if err != nil {
		requestLog(ctx).WithError(err).Infoln("Directory lookup failed.")
		return fiber.NewError(fiber.StatusBadRequest, "could not complete request")
	}

	type UserResponse struct {
		Id        int64  `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		AvatarUrl string `json:"avatar"`
	}
	return ctx.JSON(UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarUrl: user.AvatarUrl,
	})
}

package reqres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var ErrUnexpectedResponse = errors.New("reqres: unexpected response")

type User struct {
	Id        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarUrl string `json:"avatar"`
}

// Client talks to a reqres-compatible user directory. Responses are strictly
// validated; a partially shaped user is rejected, never passed downstream.
type Client struct {
	BaseUrl string
}

func (c *Client) UserById(ctx context.Context, userId int64) (User, error) {
	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(fiber.MethodGet)
	req.SetRequestURI(fmt.Sprintf("%s/api/users/%d", c.BaseUrl, userId))

	err := agent.Parse()
	if err != nil {
		return User{}, fmt.Errorf("agent parse: %w", err)
	}

	statusCode, body, errs := agent.Bytes()
	if len(errs) != 0 {
		return User{}, fmt.Errorf("agent bytes: %v", errs)
	}
	if statusCode != fiber.StatusOK {
		return User{}, fmt.Errorf("%w: status code %d", ErrUnexpectedResponse, statusCode)
	}

	var response struct {
		Data    *User `json:"data"`
		Support *struct {
			Url  string `json:"url"`
			Text string `json:"text"`
		} `json:"support"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		return User{}, fmt.Errorf("%w: unmarshal body: %s", ErrUnexpectedResponse, err)
	}
	if response.Data == nil || response.Support == nil ||
		response.Support.Url == "" || response.Support.Text == "" {
		return User{}, fmt.Errorf("%w: missing fields", ErrUnexpectedResponse)
	}
	if err = validateUser(*response.Data); err != nil {
		return User{}, err
	}
	return *response.Data, nil
}

func validateUser(u User) error {
	invalid := func(field string) error {
		return fmt.Errorf("%w: invalid field %s", ErrUnexpectedResponse, field)
	}
	if u.Id <= 0 {
		return invalid("id")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return invalid("email")
	}
	if len(u.FirstName) < 3 || len(u.FirstName) > 32 {
		return invalid("first_name")
	}
	if len(u.LastName) < 3 || len(u.LastName) > 32 {
		return invalid("last_name")
	}
	parsed, err := url.Parse(u.AvatarUrl)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return invalid("avatar")
	}
	return nil
}

func (c *Client) Download(ctx context.Context, resourceUrl string) ([]byte, error) {
	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(fiber.MethodGet)
	req.SetRequestURI(resourceUrl)

	err := agent.Parse()
	if err != nil {
		return nil, fmt.Errorf("agent parse: %w", err)
	}

	statusCode, body, errs := agent.Bytes()
	if len(errs) != 0 {
		return nil, fmt.Errorf("agent bytes: %v", errs)
	}
	if statusCode != fiber.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrUnexpectedResponse, statusCode)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUnexpectedResponse)
	}

	// body is backed by the agent's buffer which is reused after release
	data := make([]byte, len(body))
	copy(data, body)
	return data, nil
}

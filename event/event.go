package event

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserCreatedPublisher announces a freshly registered user to downstream
// consumers.
type UserCreatedPublisher = func(userId int64) error

// RestUserCreatedPublisher delivers UserCreated events as a json POST to the
// configured webhook. Any non-2xx reply is a delivery failure.
func RestUserCreatedPublisher(webhookUrl string) UserCreatedPublisher {
	return func(userId int64) error {
		payload, err := json.Marshal(map[string]interface{}{
			"eventId": uuid.New().String(),
			"type":    "UserCreated",
			"userId":  userId,
		})
		if err != nil {
			return fmt.Errorf("event serialize: %w", err)
		}

		agent := fiber.AcquireAgent()
		defer fiber.ReleaseAgent(agent)

		req := agent.Request()
		req.Header.SetMethod(fiber.MethodPost)
		req.Header.SetContentType(fiber.MIMEApplicationJSON)
		req.SetRequestURI(webhookUrl)
		req.SetBody(payload)

		if err := agent.Parse(); err != nil {
			return fmt.Errorf("agent parse: %w", err)
		}

		statusCode, body, errs := agent.Bytes()
		if len(errs) != 0 {
			return fmt.Errorf("agent bytes: %v", errs)
		}
		if statusCode < 200 || statusCode >= 300 {
			return fmt.Errorf("invalid status code %d: %s", statusCode, string(body))
		}
		return nil
	}
}

package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/roadcast/roadcast/internal/weather"
)

var validate = validator.New()

// SummaryProvider is the core operation the HTTP shell exposes.
type SummaryProvider interface {
	DailySummary(ctx context.Context, dayIndex int) (weather.DailySummary, error)
}

// NewApp builds the Fiber application with the shared error contract: every
// failing request renders `{"error": message}` with the mapped status code.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "roadcast",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "roadcast",
		})
	})

	return app
}

// RegisterRoutes wires the summary handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc SummaryProvider) {
	handler := func(c *fiber.Ctx) error {
		var q dayQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a non-negative integer")
		}

		summary, err := svc.DailySummary(c.UserContext(), q.Day)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrDayOutOfRange):
				return fiber.NewError(fiber.StatusBadRequest, weather.ErrDayOutOfRange.Error())
			case errors.Is(err, weather.ErrForecastUnavailable):
				return fiber.NewError(fiber.StatusInternalServerError, weather.ErrForecastUnavailable.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		return c.JSON(summary)
	}

	app.Get("/", handler)
	app.Get("/summary", handler)
}

// dayQuery holds the single optional query parameter of the summary endpoint.
type dayQuery struct {
	Day int `validate:"gte=0"`
}

func (q *dayQuery) bind(c *fiber.Ctx) error {
	raw := c.Query("day")
	if raw == "" {
		q.Day = 0
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("day must be an integer")
	}
	q.Day = n
	return nil
}

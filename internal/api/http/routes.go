package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nordcast/internal/forecast"
	"nordcast/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Locations are
// the configured set; requests reference them by name.
func RegisterRoutes(app *fiber.App, service *forecast.Service, locations []forecast.Location, tz *time.Location) {
	byName := make(map[string]forecast.Location, len(locations))
	for _, loc := range locations {
		byName[loc.Name] = loc
	}

	v1 := app.Group("/api/v1")

	v1.Get("/forecast/daily", func(c *fiber.Ctx) error {
		var req dailyQuery
		req.Location = c.Query("location")
		req.Days = c.QueryInt("days", 7)
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, ok := byName[req.Location]
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown location")
		}

		days, err := service.Daily(loc, req.Days, tz)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"days":     days,
		})
	})

	v1.Get("/forecast/current", func(c *fiber.Ctx) error {
		var req locationQuery
		req.Location = c.Query("location")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, ok := byName[req.Location]
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown location")
		}

		current, err := service.Current(loc)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"current":  current,
		})
	})
}

func mapServiceError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no forecast cached for location yet")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast data")
}

// locationQuery holds query parameters identifying a configured location.
type locationQuery struct {
	Location string `validate:"required"`
}

// dailyQuery holds query parameters for the daily forecast endpoint.
type dailyQuery struct {
	Location string `validate:"required"`
	Days     int    `validate:"min=1,max=9"`
}

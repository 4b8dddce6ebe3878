package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"quilthub/internal/service"
)

// GetProfile godoc
// @Summary Get a directory profile
// @Description Looks up the directory row whose slugified name matches :slug.
// @Tags profiles
// @Produce json
// @Param slug path string true "Profile slug"
// @Success 200 {object} model.Record
// @Failure 404 {object} errorPayload
// @Router /api/profiles/{slug} [get]
func GetProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Lookup(c.UserContext(), pathParam(c, "slug"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrUnavailable) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "profile not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}

// ListLookups godoc
// @Summary List lookup statistics
// @Description Per-slug lookup counters ordered by most recent lookup.
// @Tags lookups
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.LookupStatsResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/lookups [get]
func ListLookups(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Stats(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/catalog"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

type handler struct {
	assistant Assistant
}

func newHandler(assistant Assistant) *handler {
	return &handler{assistant: assistant}
}

type chatRequest struct {
	UserID  any    `json:"userId"`
	Message string `json:"message"`
}

func (h *handler) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	userID := normaliseUserID(req.UserID)
	resp := h.assistant.Route(c.UserContext(), userID, req.Message)
	return c.JSON(resp)
}

func (h *handler) orders(c *fiber.Ctx) error {
	userID := contractx.ParseUserID(c.Params("userId"))
	return c.JSON(h.assistant.LookupOrders(c.UserContext(), userID))
}

func (h *handler) products(c *fiber.Ctx) error {
	q, err := parseProductQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.assistant.Browse(c.UserContext(), q))
}

// normaliseUserID accepts the id as a JSON string or number.
func normaliseUserID(raw any) int64 {
	switch v := raw.(type) {
	case string:
		return contractx.ParseUserID(v)
	case float64:
		if v >= 1 && v == math.Trunc(v) && v < math.MaxInt64 {
			return int64(v)
		}
	}
	return contractx.DefaultUserID
}

func parseProductQuery(c *fiber.Ctx) (contractx.ProductQuery, error) {
	q := contractx.ProductQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Sort:   strings.TrimSpace(c.Query("sortBy")),
	}

	for _, slug := range strings.Split(c.Query("category"), ",") {
		if strings.TrimSpace(slug) == "" {
			continue
		}
		cat, ok := catalog.BySlug(slug)
		if !ok {
			log.Debug().Str("component", "api").Str("category", slug).Msg("unknown category slug ignored")
			continue
		}
		q.CategoryIDs = append(q.CategoryIDs, cat.ID)
	}

	var err error
	if q.PriceMin, err = parseFloatParam(c, "priceMin"); err != nil {
		return q, err
	}
	if q.PriceMax, err = parseFloatParam(c, "priceMax"); err != nil {
		return q, err
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, fiber.NewError(fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		q.Limit = limit
	}
	return q, nil
}

func parseFloatParam(c *fiber.Ctx, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return &v, nil
}

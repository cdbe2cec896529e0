package server

import (
	"errors"
	"strings"
	"unicode"

	"snapgram/internal/models"
	"snapgram/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// CursorQuery holds parsed cursor/limit query parameters.
type CursorQuery struct {
	Cursor uint
	Limit  int
}

// parseCursorQuery extracts cursor and limit query parameters. A missing or
// non-positive cursor means start of sequence; the limit is clamped to the
// shared bounds.
func parseCursorQuery(c *fiber.Ctx) CursorQuery {
	cursor := c.QueryInt("cursor", 0)
	if cursor < 0 {
		cursor = 0
	}

	limit := pagination.ClampLimit(c.QueryInt("limit", pagination.DefaultLimit))

	return CursorQuery{
		Cursor: uint(cursor),
		Limit:  limit,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondWithDomainError maps an application error to its HTTP status and
// writes the standard error body.
func respondWithDomainError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

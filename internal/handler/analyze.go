package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/kevinmilly/yt-breeze/internal/model"
	"github.com/kevinmilly/yt-breeze/internal/service"
	"github.com/kevinmilly/yt-breeze/pkg/hash"
	"github.com/kevinmilly/yt-breeze/pkg/youtube"
)

const (
	noTranscriptMessage = "Transcript not available for this video. " +
		"It may have no captions, captions may be disabled by the uploader, " +
		"or the video may be restricted."
	providerDownMessage = "Transcript service is temporarily unavailable. Please try again later."
	quotaMessage        = "Free-tier limit reached. Add your own API key to continue."
)

type AnalyzeHandler struct {
	svc    *service.AnalyzeService
	ipSalt string
}

func NewAnalyzeHandler(svc *service.AnalyzeService, ipSalt string) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, ipSalt: ipSalt}
}

// Summarize handles POST /api/summarize.
func (h *AnalyzeHandler) Summarize(c fiber.Ctx) error {
	var req model.AnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.YoutubeURL == "" && req.Transcript == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing YouTube URL",
		})
	}

	clientKey := hash.ClientKey(c.IP(), h.ipSalt)

	analysis, err := h.svc.Analyze(c.Context(), &req, clientKey)
	if err != nil {
		return h.translate(c, err)
	}

	if !req.BYOK() {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(h.svc.Quota().Remaining(clientKey)))
	}
	return c.JSON(analysis)
}

// translate maps pipeline errors onto the HTTP error taxonomy. No error
// leaves this function unshaped; provider diagnostics are already confined
// to the logs by the service layer.
func (h *AnalyzeHandler) translate(c fiber.Ctx, err error) error {
	var parseErr *service.ParseError

	switch {
	case errors.Is(err, youtube.ErrTooLong),
		errors.Is(err, youtube.ErrMalformedURL),
		errors.Is(err, youtube.ErrDisallowedDomain),
		errors.Is(err, youtube.ErrUnsupportedLink):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})

	case errors.Is(err, service.ErrQuotaExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": quotaMessage,
		})

	case errors.Is(err, service.ErrEmptyTranscript),
		errors.Is(err, service.ErrInvalidFormat):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": noTranscriptMessage,
		})

	case errors.Is(err, service.ErrProviderUnreachable):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": providerDownMessage,
		})

	case errors.Is(err, service.ErrMissingAPIKey):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server missing transcript API key.",
		})

	case errors.Is(err, service.ErrMissingModelKey):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server missing model API key.",
		})

	case errors.As(err, &parseErr):
		// Raw model text is returned for debugging but never trusted
		// structurally.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI returned invalid JSON",
			"raw":   parseErr.Raw,
		})

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Server error",
			"details": err.Error(),
		})
	}
}

// ErrorHandler shapes Fiber's own errors (405, 404, body limits) into the
// API's flat JSON envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code == fiber.StatusMethodNotAllowed {
		message = "Method Not Allowed. Use POST."
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

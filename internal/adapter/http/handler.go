package http

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"resume-editor/internal/adapter/repository"
	"resume-editor/internal/domain"
	"resume-editor/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// Extractor supplies the raw page text of a job posting URL.
type Extractor interface {
	ExtractText(ctx context.Context, pageURL string) (string, error)
}

// Handler exposes the edit session over HTTP. One session exists per
// process; the mutex keeps the "one open session" discipline even under
// concurrent requests.
type Handler struct {
	mu        sync.Mutex
	session   *usecase.Session
	extractor Extractor
	history   *repository.HistoryRepo
}

func NewHandler(session *usecase.Session, extractor Extractor, history *repository.HistoryRepo) *Handler {
	return &Handler{session: session, extractor: extractor, history: history}
}

type openReq struct {
	Section string `json:"section,omitempty"`
}

func (h *Handler) OpenSession(c *fiber.Ctx) error {
	var req openReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}
	section := domain.SectionName(req.Section)
	if section == "" {
		section = domain.SectionSummary
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	view, err := h.session.Open(c.Context(), section)
	if err != nil {
		if errors.Is(err, usecase.ErrNothingToEdit) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, usecase.ErrSessionOpen) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"view": view})
}

type viewReq struct {
	View *usecase.View `json:"view"`
}

// UpdateView replaces the working view with the client's edited copy.
func (h *Handler) UpdateView(c *fiber.Ctx) error {
	var req viewReq
	if err := c.BodyParser(&req); err != nil || req.View == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.session.SetView(req.View); err != nil {
		if errors.Is(err, usecase.ErrSessionClosed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

type switchReq struct {
	Section string        `json:"section"`
	View    *usecase.View `json:"view,omitempty"`
}

// SwitchSection commits the section being left and returns the next view.
func (h *Handler) SwitchSection(c *fiber.Ctx) error {
	var req switchReq
	if err := c.BodyParser(&req); err != nil || req.Section == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.View != nil {
		if err := h.session.SetView(req.View); err != nil {
			if errors.Is(err, usecase.ErrSessionClosed) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	view, err := h.session.Switch(domain.SectionName(req.Section))
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	resp := fiber.Map{"view": view}
	if perr := h.session.LastParseError(); perr != nil {
		resp["parse_error"] = perr.Error()
	}
	return c.JSON(resp)
}

type saveReq struct {
	View *usecase.View `json:"view,omitempty"`
}

// SaveSession commits the active section, regenerates the artifact, and
// closes the session on success.
func (h *Handler) SaveSession(c *fiber.Ctx) error {
	var req saveReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.View != nil {
		if err := h.session.SetView(req.View); err != nil {
			if errors.Is(err, usecase.ErrSessionClosed) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	viewURL, err := h.session.Save(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrSessionClosed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		// session stays open so the user can retry
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "view_url": viewURL})
}

func (h *Handler) CancelSession(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session.Cancel()
	return c.JSON(fiber.Map{"status": "cancelled"})
}

type extractReq struct {
	URL string `json:"url"`
}

// ExtractJD fetches a job posting's page text to seed the editing context.
func (h *Handler) ExtractJD(c *fiber.Ctx) error {
	var req extractReq
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	text, err := h.extractor.ExtractText(ctx, req.URL)
	if err != nil {
		log.Printf("jd extract failed for %s: %v", req.URL, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"jd_text": text})
}

func (h *Handler) History(c *fiber.Ctx) error {
	recs, err := h.history.ListRecent(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"history": recs})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/catalog"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type CatalogHandler struct {
	svc catalog.Service
	v   *validate.Validator
}

func NewCatalogHandler(svc catalog.Service, v *validate.Validator) *CatalogHandler {
	return &CatalogHandler{svc: svc, v: v}
}

type createServiceBody struct {
	Name             string   `json:"name" validate:"required"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"shortDescription"`
	DurationMinutes  *int     `json:"durationMinutes" validate:"omitempty,min=0"`
	Priority         *int     `json:"priority"`
	Active           *bool    `json:"active"`
	Images           []string `json:"images"`
	ParentID         *string  `json:"parentId" validate:"omitempty,uuid"`
}

type updateServiceBody struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	ShortDescription *string   `json:"shortDescription"`
	DurationMinutes  *int      `json:"durationMinutes" validate:"omitempty,min=0"`
	Priority         *int      `json:"priority"`
	Active           *bool     `json:"active"`
	Images           *[]string `json:"images"`
	ParentID         *string   `json:"parentId"`
}

// GET /api/v1/services
func (h *CatalogHandler) List(c fiber.Ctx) error {
	var q struct {
		Active bool `query:"active"`
		Root   bool `query:"root"`
	}
	_ = c.Bind().Query(&q)

	services, err := h.svc.List(c.Context(), catalog.ListRequest{
		ActiveOnly: q.Active,
		RootOnly:   q.Root,
	})
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, services)
}

// GET /api/v1/services/:id
func (h *CatalogHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid service id")
	}

	svc, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, svc)
}

// POST /api/v1/services
func (h *CatalogHandler) Create(c fiber.Ctx) error {
	var body createServiceBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	req := catalog.CreateRequest{
		Name:             body.Name,
		Description:      body.Description,
		ShortDescription: body.ShortDescription,
		DurationMinutes:  body.DurationMinutes,
		Priority:         body.Priority,
		Active:           body.Active,
		Images:           body.Images,
	}
	if body.ParentID != nil && *body.ParentID != "" {
		pid, err := uuid.Parse(*body.ParentID)
		if err != nil {
			return badRequest(c, "invalid parentId")
		}
		req.ParentID = &pid
	}

	svc, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return created(c, svc)
}

// PATCH /api/v1/services/:id
func (h *CatalogHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid service id")
	}

	var body updateServiceBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	// parentId sent as null detaches the service from its parent, which
	// is not the same as leaving the key out.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &keys); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := catalog.UpdateRequest{
		Name:             body.Name,
		Description:      body.Description,
		ShortDescription: body.ShortDescription,
		DurationMinutes:  body.DurationMinutes,
		Priority:         body.Priority,
		Active:           body.Active,
		Images:           body.Images,
	}
	if _, present := keys["parentId"]; present {
		req.ParentIDSet = true
		if body.ParentID != nil && *body.ParentID != "" {
			pid, err := uuid.Parse(*body.ParentID)
			if err != nil {
				return badRequest(c, "invalid parentId")
			}
			req.ParentID = &pid
		}
	}

	svc, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, svc)
}

// DELETE /api/v1/services/:id
func (h *CatalogHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid service id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapCatalogError(c, err)
	}
	return deleted(c)
}

func mapCatalogError(c fiber.Ctx, err error) error {
	if resp, handled := renderConstraint(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, catalog.ErrSelfParent),
		errors.Is(err, catalog.ErrParentNotFound),
		errors.Is(err, catalog.ErrParentNotRoot),
		errors.Is(err, catalog.ErrHasChildren):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

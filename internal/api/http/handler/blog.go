package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/blog"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type BlogHandler struct {
	svc blog.Service
	v   *validate.Validator
}

func NewBlogHandler(svc blog.Service, v *validate.Validator) *BlogHandler {
	return &BlogHandler{svc: svc, v: v}
}

type createBlogBody struct {
	Title      string  `json:"title" validate:"required"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	CoverImage *string `json:"coverImage"`
	Published  *bool   `json:"published"`
}

type updateBlogBody struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	CoverImage *string `json:"coverImage"`
	Published  *bool   `json:"published"`
}

// GET /api/v1/blogs
func (h *BlogHandler) List(c fiber.Ctx) error {
	var q struct {
		Published bool `query:"published"`
	}
	_ = c.Bind().Query(&q)

	posts, err := h.svc.List(c.Context(), blog.ListRequest{PublishedOnly: q.Published})
	if err != nil {
		return mapBlogError(c, err)
	}
	return ok(c, posts)
}

// GET /api/v1/blogs/:id
func (h *BlogHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid blog id")
	}

	post, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapBlogError(c, err)
	}
	return ok(c, post)
}

// POST /api/v1/blogs
func (h *BlogHandler) Create(c fiber.Ctx) error {
	var body createBlogBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	post, err := h.svc.Create(c.Context(), blog.CreateRequest{
		Title:      body.Title,
		Slug:       body.Slug,
		Excerpt:    body.Excerpt,
		Body:       body.Body,
		CoverImage: body.CoverImage,
		Published:  body.Published,
	})
	if err != nil {
		return mapBlogError(c, err)
	}
	return created(c, post)
}

// PATCH /api/v1/blogs/:id
func (h *BlogHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid blog id")
	}

	var body updateBlogBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	post, err := h.svc.Update(c.Context(), id, blog.UpdateRequest{
		Title:      body.Title,
		Slug:       body.Slug,
		Excerpt:    body.Excerpt,
		Body:       body.Body,
		CoverImage: body.CoverImage,
		Published:  body.Published,
	})
	if err != nil {
		return mapBlogError(c, err)
	}
	return ok(c, post)
}

// DELETE /api/v1/blogs/:id
func (h *BlogHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid blog id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapBlogError(c, err)
	}
	return deleted(c)
}

func mapBlogError(c fiber.Ctx, err error) error {
	if resp, handled := renderConstraint(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, blog.ErrEmptySlug):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

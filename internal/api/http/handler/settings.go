package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/settings"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
)

type SettingsHandler struct {
	svc settings.Service
	v   *validate.Validator
}

func NewSettingsHandler(svc settings.Service, v *validate.Validator) *SettingsHandler {
	return &SettingsHandler{svc: svc, v: v}
}

type updateSettingsBody struct {
	ClinicName   string            `json:"clinicName"`
	Tagline      *string           `json:"tagline"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email" validate:"omitempty,email"`
	Address      string            `json:"address"`
	OpeningHours string            `json:"openingHours"`
	SocialLinks  map[string]string `json:"socialLinks" validate:"omitempty,dive,url"`
	HeroImage    *string           `json:"heroImage"`
}

// GET /api/v1/settings
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	doc, err := h.svc.Get(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, doc)
}

// PUT /api/v1/settings
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	var body updateSettingsBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.v.Struct(body); err != nil {
		return invalidInput(c, err)
	}

	doc, err := h.svc.Update(c.Context(), settings.UpdateRequest{
		ClinicName:   body.ClinicName,
		Tagline:      body.Tagline,
		Phone:        body.Phone,
		Email:        body.Email,
		Address:      body.Address,
		OpeningHours: body.OpeningHours,
		SocialLinks:  body.SocialLinks,
		HeroImage:    body.HeroImage,
	})
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, doc)
}

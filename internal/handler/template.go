// Package handler wires HTTP requests to the logic layer.
package handler

import (
	"errors"
	"strconv"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logic"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/response"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/templatetree"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// CreateTemplate handles POST /api/template.
func CreateTemplate(c *fiber.Ctx) error {
	var req logic.CreateTemplateReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	tpl, err := logic.NewTemplateLogic(c.UserContext()).Create(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, tpl)
}

// GetTemplate handles GET /api/template/:id.
func GetTemplate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	tpl, err := logic.NewTemplateLogic(c.UserContext()).Get(id)
	if errors.Is(err, logic.ErrTemplateNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, tpl)
}

// ListTemplates handles GET /api/template.
func ListTemplates(c *fiber.Ctx) error {
	var req logic.TemplateListReq
	if err := c.QueryParser(&req); err != nil {
		return response.Error(c, "invalid query parameters")
	}

	list, total, err := logic.NewTemplateLogic(c.UserContext()).List(&req)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Page(c, list, total, req.Page, req.PageSize)
}

// DeleteTemplate handles DELETE /api/template/:id.
func DeleteTemplate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	err = logic.NewTemplateLogic(c.UserContext()).Delete(id)
	if errors.Is(err, logic.ErrTemplateNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, nil)
}

// GetTemplateStructure handles GET /api/template/:id/structure, serving the
// payload shape the editor hydrates its builder from.
func GetTemplateStructure(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	payload, err := logic.NewTemplateLogic(c.UserContext()).Structure(id)
	if errors.Is(err, logic.ErrTemplateNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, payload)
}

// SaveTemplateStructure handles POST /api/template/:id/structure, the
// full-replace save of the template editor.
func SaveTemplateStructure(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	var payload templatetree.SavePayload
	if err := c.BodyParser(&payload); err != nil {
		return response.Error(c, "invalid request body")
	}

	result, err := logic.NewTemplateLogic(c.UserContext()).SaveStructure(id, &payload)
	if errors.Is(err, logic.ErrTemplateNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Error(c, err.Error())
	}
	if result.Warning != "" {
		return response.SuccessWithWarning(c, result, result.Warning)
	}
	return response.Success(c, result)
}

// ValidateTemplateStructure handles POST /api/template/validate: a dry run of
// the structural gate so the editor can disable its save button with precise
// per-field messages.
func ValidateTemplateStructure(c *fiber.Ctx) error {
	var payload templatetree.SavePayload
	if err := c.BodyParser(&payload); err != nil {
		return response.Error(c, "invalid request body")
	}
	return response.Success(c, templatetree.ValidatePayload(&payload))
}

package handler

import (
	"errors"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logic"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/response"

	"github.com/gofiber/fiber/v2"
)

// CreateInstance handles POST /api/instance.
func CreateInstance(c *fiber.Ctx) error {
	var req logic.CreateInstanceReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	inst, err := logic.NewInstanceLogic(c.UserContext()).Create(&req)
	if errors.Is(err, logic.ErrTemplateNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, inst)
}

// GetInstance handles GET /api/instance/:id.
func GetInstance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	inst, err := logic.NewInstanceLogic(c.UserContext()).Get(id)
	if errors.Is(err, logic.ErrInstanceNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, inst)
}

// ListInstances handles GET /api/instance.
func ListInstances(c *fiber.Ctx) error {
	var req logic.InstanceListReq
	if err := c.QueryParser(&req); err != nil {
		return response.Error(c, "invalid query parameters")
	}

	list, total, err := logic.NewInstanceLogic(c.UserContext()).List(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Page(c, list, total, req.Page, req.PageSize)
}

// UpdateInstanceStatus handles PUT /api/instance/:id/status.
func UpdateInstanceStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	var req logic.UpdateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	err = logic.NewInstanceLogic(c.UserContext()).UpdateStatus(id, &req)
	if errors.Is(err, logic.ErrInstanceNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, nil)
}

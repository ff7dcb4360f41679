package handler

import (
	"errors"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logic"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/response"

	"github.com/gofiber/fiber/v2"
)

// ListVariables handles GET /api/variable.
func ListVariables(c *fiber.Ctx) error {
	list, err := logic.NewVariableLogic(c.UserContext()).List()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, list)
}

// CreateVariable handles POST /api/variable.
func CreateVariable(c *fiber.Ctx) error {
	var req logic.SaveVariableReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	v, err := logic.NewVariableLogic(c.UserContext()).Create(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, v)
}

// UpdateVariable handles PUT /api/variable/:id.
func UpdateVariable(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	var req logic.SaveVariableReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	v, err := logic.NewVariableLogic(c.UserContext()).Update(id, &req)
	if errors.Is(err, logic.ErrVariableNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, v)
}

// DeleteVariable handles DELETE /api/variable/:id.
func DeleteVariable(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	err = logic.NewVariableLogic(c.UserContext()).Delete(id)
	if errors.Is(err, logic.ErrVariableNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, nil)
}

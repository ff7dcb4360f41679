// Package response defines the JSON envelope every handler replies with.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the unified reply envelope.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// PageData wraps paginated list replies.
type PageData struct {
	List     any   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Reply codes.
const (
	CodeSuccess     = 0
	CodeError       = -1
	CodeNotFound    = 404
	CodeServerError = 500
)

// Reply messages.
const (
	MsgSuccess     = "success"
	MsgNotFound    = "not found"
	MsgServerError = "server error"
)

// Success replies with data under the success code.
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(Response{Code: CodeSuccess, Message: MsgSuccess, Data: data})
}

// SuccessWithWarning replies success but carries a warning the client must
// surface distinctly, e.g. when a template save was reduced to a metadata
// update because active processes reference it.
func SuccessWithWarning(c *fiber.Ctx, data any, warning string) error {
	return c.JSON(Response{Code: CodeSuccess, Message: MsgSuccess, Data: data, Warning: warning})
}

// Error replies with a user-facing message under the generic error code.
func Error(c *fiber.Ctx, message string) error {
	return c.JSON(Response{Code: CodeError, Message: message})
}

// NotFound replies 404.
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return c.Status(fiber.StatusNotFound).JSON(Response{Code: CodeNotFound, Message: message})
}

// ServerError replies 500.
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgServerError
	}
	return c.Status(fiber.StatusInternalServerError).JSON(Response{Code: CodeServerError, Message: message})
}

// Page replies with a paginated list.
func Page(c *fiber.Ctx, list any, total int64, page, pageSize int) error {
	return Success(c, PageData{List: list, Total: total, Page: page, PageSize: pageSize})
}

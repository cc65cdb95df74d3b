package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// InternalServerError sends a 500 for pages that cannot be built
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ViewResponse is the document returned for a page: the view name, the
// flash messages popped for it and the page data
type ViewResponse struct {
	Success bool        `json:"success"`
	View    string      `json:"view"`
	Flash   interface{} `json:"flash,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// View sends a page document
func View(c *fiber.Ctx, name string, flash interface{}, data interface{}) error {
	return c.JSON(ViewResponse{
		Success: true,
		View:    name,
		Flash:   flash,
		Data:    data,
	})
}

// Redirect sends a 303 so the browser follows with a GET. Actions never
// answer with a page so a refresh cannot replay them.
func Redirect(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

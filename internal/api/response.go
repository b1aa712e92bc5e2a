package api

import "github.com/labstack/echo/v4"

// The earlier iterations of this app returned a different error shape from
// almost every handler; every JSON response now goes through these two
// helpers: {"success":true, ...} or {"success":false, "error":...}.

func ok(c echo.Context, payload map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["success"] = true
	return c.JSON(200, payload)
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]interface{}{"success": false, "error": msg})
}

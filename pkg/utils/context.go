package utils

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ExtractUserInfo reads the authenticated user's id and role from the echo
// context. The JWT middleware is responsible for setting both keys.
func ExtractUserInfo(c echo.Context) (int, string, error) {
	userID, ok := c.Get("userID").(int)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication context")
	}
	role, _ := c.Get("userRole").(string)
	return userID, role, nil
}

// GetPageLimit reads pagination query parameters with the defaults the
// listing endpoints use. A page_size of -1 means "no limit".
func GetPageLimit(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 0 {
		page = 0
	}
	pageSize, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || (pageSize < 1 && pageSize != -1) {
		pageSize = 10
	}
	return page, pageSize
}

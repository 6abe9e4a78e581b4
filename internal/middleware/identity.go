package middleware

// identity.go extracts the caller's identity for keying rate limits.  When
// no token was verified on the request, "anon" is returned.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/wildlife-sightings/internal/utils"
)

func currentUserID(c echo.Context) string {
    if cl, ok := c.Get(CtxUser).(*utils.Claims); ok && cl.ID != 0 {
        return strconv.FormatInt(cl.ID, 10)
    }
    return "anon"
}

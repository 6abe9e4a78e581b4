package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // splitting the Authorization header

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/wildlife-sightings/internal/utils" // token verification
)

// Context keys set by JWTAuth for downstream handlers.
const (
    CtxUser   = "user"    // *utils.Claims
    CtxUserID = "user_id" // int64
    CtxEmail  = "email"   // string
)

// JWTAuth returns an Echo middleware that validates the bearer token in the
// Authorization header against secret.  The token is the second
// space-separated word of the header ("Bearer <token>").  A missing token
// answers 401 "Token no proporcionado"; a token that fails signature or
// expiry verification answers 401 "Token inválido".  On success the decoded
// claims are available through c.Get(CtxUser), c.Get(CtxUserID) and
// c.Get(CtxEmail).
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := bearerToken(c.Request().Header.Get("Authorization"))
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token no proporcionado"})
            }

            claims, err := utils.ParseToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido"})
            }

            c.Set(CtxUser, claims)
            c.Set(CtxUserID, claims.ID)
            c.Set(CtxEmail, claims.Email)
            return next(c)
        }
    }
}

// bearerToken returns the second word of an Authorization header value.
func bearerToken(header string) string {
    parts := strings.Split(header, " ")
    if len(parts) < 2 {
        return ""
    }
    return parts[1]
}

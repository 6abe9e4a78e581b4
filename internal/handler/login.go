package handler

import (
    "context"  // provides a bounded context for the lookup
    "errors"   // errors.Is for sentinel matching
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/wildlife-sightings/internal/model"      // user model returned by the lookup
    "github.com/iliyamo/wildlife-sightings/internal/repository" // ErrUserNotFound sentinel
    "github.com/iliyamo/wildlife-sightings/internal/utils"      // password verification and token issuing
)

// UserFinder looks a user up by email, credential hash included.
type UserFinder interface {
    GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
    Users     UserFinder
    JWTSecret string
}

func NewAuthHandler(users UserFinder, jwtSecret string) *AuthHandler {
    return &AuthHandler{Users: users, JWTSecret: jwtSecret}
}

type loginReq struct {
    Email      model.Text `json:"email" form:"email"`
    Contrasena model.Text `json:"contraseña" form:"contraseña"`
}

// Login verifies email and password and returns a one-hour token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, string(req.Email))
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "Usuario no encontrado"})
        }
        return storeFailure(c, err, "Error al iniciar sesión")
    }

    hash := ""
    if u.Contrasena != nil {
        hash = string(*u.Contrasena)
    }
    if !utils.VerifyPassword(hash, string(req.Contrasena)) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Contraseña incorrecta"})
    }

    email := string(req.Email)
    if u.Email != nil {
        email = string(*u.Email)
    }
    token, err := utils.NewToken(h.JWTSecret, u.ID, email, utils.TokenTTL)
    if err != nil {
        return storeFailure(c, err, "Error al iniciar sesión")
    }
    return c.JSON(http.StatusOK, echo.Map{"token": token})
}

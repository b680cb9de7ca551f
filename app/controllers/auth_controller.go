package controllers

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/ctx"
	"github.com/fennwick/brasserie/pkg/middleware"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{service: services.NewAuthService(db)}
}

// Login handles POST /api/auth/login.
func (ctl *AuthController) Login(c *ctx.Context) {
	var input services.LoginInput
	if !c.BindJSON(&input) {
		return
	}

	staff, token, err := ctl.service.Login(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Success(map[string]any{"token": token, "user": staff})
}

// Register handles POST /api/auth/register.
func (ctl *AuthController) Register(c *ctx.Context) {
	var input services.RegisterInput
	if !c.BindJSON(&input) {
		return
	}

	staff, token, err := ctl.service.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Created(map[string]any{"token": token, "user": staff})
}

// Logout handles POST /api/auth/logout: the presented token is denylisted
// until its natural expiry.
func (ctl *AuthController) Logout(c *ctx.Context) {
	claims := middleware.ClaimsFromCtx(c.Context())
	if claims == nil {
		c.Unauthorized()
		return
	}

	if err := ctl.service.Logout(c.Context(), claims); err != nil {
		respondError(c, err)
		return
	}

	c.SuccessMessage("Logged out")
}

// Me handles GET /api/auth/me.
func (ctl *AuthController) Me(c *ctx.Context) {
	staff, err := ctl.service.Me(middleware.StaffIDFromCtx(c.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(staff)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotelchain-backend/middleware"
	"hotelchain-backend/models"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

type SignupPayload struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

type SigninPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers an account and signs the caller in immediately.
func (ctl *AuthController) Signup(c *gin.Context) {
	var payload SignupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := ctl.AuthSvc.Signup(services.SignupInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctl.setAuthCookie(c, *user); err != nil {
		respondServiceError(c, err)
		return
	}
	log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user signed up")
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ctl *AuthController) Signin(c *gin.Context) {
	var payload SigninPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := ctl.AuthSvc.Signin(payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := ctl.setAuthCookie(c, *user); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// Signout clears the auth cookie. Always succeeds, even without a session.
func (ctl *AuthController) Signout(c *gin.Context) {
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", cookieSecure(), true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "signed out"})
}

func (ctl *AuthController) Me(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := ctl.AuthSvc.Me(current.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctl *AuthController) setAuthCookie(c *gin.Context, user models.User) error {
	token, err := utils.GenerateToken(user)
	if err != nil {
		return err
	}
	c.SetCookie(utils.AuthCookieName, token, int(utils.TokenTTL.Seconds()), "/", "", cookieSecure(), true)
	return nil
}

func cookieSecure() bool {
	return utils.EnvOrDefault("COOKIE_SECURE", "false") == "true"
}

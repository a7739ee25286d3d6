package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/middleware"
	"hotelchain-backend/models"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

func (ctl *UserController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	users, err := ctl.UserSvc.List(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (ctl *UserController) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	target, err := ctl.UserSvc.Get(user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, target)
}

type UserPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	HotelID   *uint  `json:"hotelId"`
	IsActive  *bool  `json:"isActive"`
}

func (p UserPayload) toInput() services.UserInput {
	return services.UserInput{
		Email:     p.Email,
		Password:  p.Password,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Role:      models.Role(p.Role),
		HotelID:   p.HotelID,
		IsActive:  p.IsActive,
	}
}

func (ctl *UserController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := ctl.UserSvc.Create(user, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, target)
}

func (ctl *UserController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := ctl.UserSvc.Update(user, id, payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, target)
}

func (ctl *UserController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctl.UserSvc.Delete(user, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "user deleted"})
}

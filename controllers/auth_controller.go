package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printlog/config"
	"printlog/middleware"
	"printlog/utils"
)

// adminUsername is the single shared admin identity; there are no other
// accounts.
const adminUsername = "admin"

// AuthController issues and verifies admin bearer tokens.
type AuthController struct {
	cfg config.AppConfig
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(cfg config.AppConfig) *AuthController {
	return &AuthController{cfg: cfg}
}

// Login checks the shared admin credential and issues a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")
	if username == "" || password == "" {
		utils.Error(ctx, http.StatusBadRequest, 40001, "username and password are required")
		return
	}

	if username != adminUsername || !utils.CheckAdminPassword(a.cfg.AdminPassword, password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(a.cfg.JWTSecret, username, utils.TokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Verify confirms the caller's token is valid and echoes its subject.
func (a *AuthController) Verify(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "valid",
		"user":   ctx.GetString(middleware.ContextUserKey),
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/auth"
	"github.com/forceboard-dev/forceboard/internal/logger"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/forceboard-dev/forceboard/internal/retry"
	"github.com/forceboard-dev/forceboard/internal/session"
	"github.com/forceboard-dev/forceboard/internal/types"
	"github.com/forceboard-dev/forceboard/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", body.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		logger.Error("failed to hash password", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Name:         body.Name,
		FullName:     body.FullName,
		Email:        body.Email,
		PasswordHash: string(passwordHash),
	}

	if err := retry.Create(ctx.Request.Context(), db.DB, &newUser); err != nil {
		respondError(ctx, err)
		return
	}

	profile, err := session.EnsureProfile(db.DB, newUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email)

	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": types.ProfileResponse{
			ID:       profile.ID,
			UserID:   newUser.ID,
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	})
}

func LoginUser(ctx *gin.Context) {
	var body LoginUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var existingUser models.User

	err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).First(&existingUser).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(ctx, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	profile, err := session.EnsureProfile(db.DB, existingUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := auth.GenerateJWT(existingUser.ID, existingUser.Email)

	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": types.ProfileResponse{
			ID:       profile.ID,
			UserID:   existingUser.ID,
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	if err := db.DB.First(&profile, currentUser.ProfileID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.ProfileResponse{
			ID:       profile.ID,
			UserID:   profile.UserID,
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	})
}

func LogoutUser(ctx *gin.Context) {
	setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

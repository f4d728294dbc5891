package handlers

import (
	"errors"
	"net/http"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/apperr"
	"github.com/forceboard-dev/forceboard/internal/logger"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Domain is the cookie domain for issued tokens, set from config at startup.
var Domain string

func setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// respondError logs the raw diagnostic and returns only the classified,
// human-readable message to the client.
func respondError(ctx *gin.Context, err error) {
	appErr := apperr.Classify(err)

	if appErr.Kind == apperr.KindInternal || appErr.Kind == apperr.KindTransient {
		logger.Error("request failed", "path", ctx.FullPath(), "error", err)
	}

	ctx.JSON(apperr.HTTPStatus(appErr), gin.H{"error": appErr.Message})
}

func findInterview(id uint) (models.Interview, error) {
	var interview models.Interview

	if err := db.DB.First(&interview, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interview, apperr.New(apperr.KindNotFound, "Interview not found")
		}
		return interview, err
	}

	return interview, nil
}

func findStory(id uint) (models.Story, error) {
	var story models.Story

	if err := db.DB.First(&story, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return story, apperr.New(apperr.KindNotFound, "Story not found")
		}
		return story, err
	}

	return story, nil
}

func findGroup(id uint) (models.ForceGroup, error) {
	var group models.ForceGroup

	if err := db.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return group, apperr.New(apperr.KindNotFound, "Group not found")
		}
		return group, err
	}

	return group, nil
}

// storyProjectID walks story → interview → project.
func storyProjectID(story models.Story) (uint, error) {
	interview, err := findInterview(story.InterviewID)

	if err != nil {
		return 0, err
	}

	return interview.ProjectID, nil
}

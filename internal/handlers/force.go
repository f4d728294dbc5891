package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/jtbd"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/forceboard-dev/forceboard/internal/retry"
	"github.com/forceboard-dev/forceboard/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateForceRequest struct {
	Type        string `json:"type" binding:"required,oneof=push pull habit anxiety"`
	Description string `json:"description" binding:"required"`
}

type UpdateForceRequest struct {
	Description *string `json:"description"`
	// GroupID assigns the force to a group; set clear_group to detach it.
	GroupID    *uint `json:"group_id"`
	ClearGroup bool  `json:"clear_group"`
}

type ForceResponse struct {
	ID          uint      `json:"id"`
	StoryID     uint      `json:"story_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	GroupID     *uint     `json:"group_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func forceResponse(force models.Force) ForceResponse {
	return ForceResponse{
		ID:          force.ID,
		StoryID:     force.StoryID,
		Type:        force.Type,
		Description: force.Description,
		GroupID:     force.GroupID,
		CreatedAt:   force.CreatedAt,
	}
}

func CreateForce(ctx *gin.Context) {
	storyID, err := utils.GetIDParam(ctx, "story_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateForceRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story, err := findStory(storyID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	force := models.Force{
		StoryID:     story.ID,
		Type:        body.Type,
		Description: body.Description,
	}

	if err := retry.Create(ctx.Request.Context(), db.DB, &force); err != nil {
		respondError(ctx, err)
		return
	}

	if projectID, projErr := storyProjectID(story); projErr == nil {
		BroadcastRefresh(projectID, "force")
	}

	ctx.JSON(http.StatusCreated, forceResponse(force))
}

func ListForces(ctx *gin.Context) {
	storyID, err := utils.GetIDParam(ctx, "story_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var forces []models.Force

	if err := db.DB.Where("story_id = ?", storyID).Order("created_at DESC").Find(&forces).Error; err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ForceResponse, 0, len(forces))

	for _, force := range forces {
		response = append(response, forceResponse(force))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateForce patches the description and moves the force between groups.
// Cross-type assignment is rejected unless the target is a leftover bucket.
func UpdateForce(ctx *gin.Context) {
	forceID, err := utils.GetIDParam(ctx, "force_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateForceRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var force models.Force

	if err := db.DB.First(&force, forceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Force not found"})
		} else {
			respondError(ctx, err)
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.ClearGroup {
		updates["group_id"] = nil
	} else if body.GroupID != nil {
		group, err := findGroup(*body.GroupID)

		if err != nil {
			respondError(ctx, err)
			return
		}

		if !jtbd.CanAssign(force.Type, group) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Force type does not match group type"})
			return
		}

		// The group must belong to the force's own project.
		story, err := findStory(force.StoryID)

		if err != nil {
			respondError(ctx, err)
			return
		}

		projectID, err := storyProjectID(story)

		if err != nil {
			respondError(ctx, err)
			return
		}

		if group.ProjectID != projectID {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Group belongs to a different project"})
			return
		}

		updates["group_id"] = *body.GroupID
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&force).Updates(updates).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.First(&force, force.ID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if story, serr := findStory(force.StoryID); serr == nil {
		if projectID, perr := storyProjectID(story); perr == nil {
			BroadcastRefresh(projectID, "force")
		}
	}

	ctx.JSON(http.StatusOK, forceResponse(force))
}

// DeleteForce is idempotent: removing a force that is already gone is a
// successful no-op.
func DeleteForce(ctx *gin.Context) {
	forceID, err := utils.GetIDParam(ctx, "force_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var force models.Force

	if err := db.DB.First(&force, forceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Status(http.StatusNoContent)
			return
		}
		respondError(ctx, err)
		return
	}

	if err := db.DB.Delete(&force).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if story, serr := findStory(force.StoryID); serr == nil {
		if projectID, perr := storyProjectID(story); perr == nil {
			BroadcastRefresh(projectID, "force")
		}
	}

	ctx.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/forceboard-dev/forceboard/internal/retry"
	"github.com/forceboard-dev/forceboard/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateGroupRequest struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=push pull"`
	Color      string `json:"color"`
	IsLeftover bool   `json:"is_leftover"`
}

type UpdateGroupRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Position *int    `json:"position"`
}

type ReorderGroupsRequest struct {
	Positions []GroupPosition `json:"positions" binding:"required,dive"`
}

type GroupPosition struct {
	ID       uint `json:"id" binding:"required"`
	Position int  `json:"position"`
}

type GroupResponse struct {
	ID         uint      `json:"id"`
	ProjectID  uint      `json:"project_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Color      string    `json:"color"`
	IsLeftover bool      `json:"is_leftover"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

func groupResponse(group models.ForceGroup) GroupResponse {
	return GroupResponse{
		ID:         group.ID,
		ProjectID:  group.ProjectID,
		Name:       group.Name,
		Type:       group.Type,
		Color:      group.Color,
		IsLeftover: group.IsLeftover,
		Position:   group.Position,
		CreatedAt:  group.CreatedAt,
	}
}

func CreateGroup(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateGroupRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			respondError(ctx, err)
		}
		return
	}

	// New groups land at the end of the board.
	var maxPosition int

	row := db.DB.Model(&models.ForceGroup{}).Where("project_id = ?", project.ID).Select("COALESCE(MAX(position), -1)").Row()

	if err := row.Scan(&maxPosition); err != nil {
		respondError(ctx, err)
		return
	}

	group := models.ForceGroup{
		ProjectID:  project.ID,
		Name:       body.Name,
		Type:       body.Type,
		Color:      body.Color,
		IsLeftover: body.IsLeftover,
		Position:   maxPosition + 1,
	}

	if err := retry.Create(ctx.Request.Context(), db.DB, &group); err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(project.ID, "force_group")
	ctx.JSON(http.StatusCreated, groupResponse(group))
}

func ListGroups(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var groups []models.ForceGroup

	if err := db.DB.Where("project_id = ?", projectID).Order("position ASC").Find(&groups).Error; err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]GroupResponse, 0, len(groups))

	for _, group := range groups {
		response = append(response, groupResponse(group))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateGroup(ctx *gin.Context) {
	groupID, err := utils.GetIDParam(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateGroupRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := findGroup(groupID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.Color != nil {
		updates["color"] = *body.Color
	}

	if body.Position != nil {
		updates["position"] = *body.Position
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&group).Updates(updates).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.First(&group, group.ID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(group.ProjectID, "force_group")
	ctx.JSON(http.StatusOK, groupResponse(group))
}

// ReorderGroups persists a full board ordering in one request after a drag.
func ReorderGroups(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body ReorderGroupsRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, pos := range body.Positions {
			result := tx.Model(&models.ForceGroup{}).
				Where("id = ? AND project_id = ?", pos.ID, projectID).
				Update("position", pos.Position)

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Group not found in project"})
		} else {
			respondError(ctx, err)
		}
		return
	}

	BroadcastRefresh(projectID, "force_group")
	ctx.Status(http.StatusNoContent)
}

// DeleteGroup removes the group; assigned forces detach (group_id goes
// NULL), matrix entries for the group are cascade-deleted.
func DeleteGroup(ctx *gin.Context) {
	groupID, err := utils.GetIDParam(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := findGroup(groupID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.Delete(&group).Error; err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(group.ProjectID, "force_group")
	ctx.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/forceboard-dev/forceboard/internal/retry"
	"github.com/forceboard-dev/forceboard/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Settings    datatypes.JSON `json:"settings"`
}

type UpdateProjectRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Status      *string        `json:"status" binding:"omitempty,oneof=active completed archived"`
	Settings    datatypes.JSON `json:"settings"`
}

type GetProjectResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	OwnerID     uint           `json:"owner_id"`
	Status      string         `json:"status"`
	Settings    datatypes.JSON `json:"settings"`
}

func projectResponse(project models.Project) GetProjectResponse {
	return GetProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Status:      project.Status,
		Settings:    project.Settings,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profileID, err := utils.GetCurrentProfileID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     profileID,
		Status:      models.ProjectStatusActive,
		Settings:    body.Settings,
	}

	if err := retry.Create(ctx.Request.Context(), db.DB, &project); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

// ListProjects returns every project: any signed-in researcher sees the
// whole team's work.
func ListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]GetProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
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

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	// Partial patch; OwnerID is immutable and never part of the request.
	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Status != nil {
		updates["status"] = *body.Status
	}

	if body.Settings != nil {
		updates["settings"] = body.Settings
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.First(&project, project.ID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(project.ID, "project")
	ctx.JSON(http.StatusOK, projectResponse(project))
}

// DeleteProject removes the project and, via the declared cascades, its
// entire subtree of interviews, stories, forces, groups, and matrix entries.
func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
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

	if err := db.DB.Delete(&project).Error; err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(project.ID, "project")
	ctx.Status(http.StatusNoContent)
}

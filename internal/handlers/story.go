package handlers

import (
	"net/http"
	"time"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/jtbd"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/forceboard-dev/forceboard/internal/retry"
	"github.com/forceboard-dev/forceboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateStoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SituationA  string `json:"situation_a" binding:"required"`
	SituationB  string `json:"situation_b" binding:"required"`
}

type UpdateStoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SituationA  *string `json:"situation_a"`
	SituationB  *string `json:"situation_b"`
	ClusterID   *uint   `json:"cluster_id"`
}

type StoryResponse struct {
	ID          uint      `json:"id"`
	InterviewID uint      `json:"interview_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SituationA  string    `json:"situation_a"`
	SituationB  string    `json:"situation_b"`
	ClusterID   *uint     `json:"cluster_id"`
	IsComplete  bool      `json:"is_complete"`
	CreatedAt   time.Time `json:"created_at"`
}

// storyResponse recomputes completeness from the story's loaded forces;
// the flag is never persisted.
func storyResponse(story models.Story) StoryResponse {
	return StoryResponse{
		ID:          story.ID,
		InterviewID: story.InterviewID,
		Title:       story.Title,
		Description: story.Description,
		SituationA:  story.SituationA,
		SituationB:  story.SituationB,
		ClusterID:   story.ClusterID,
		IsComplete:  jtbd.IsComplete(story.Forces),
		CreatedAt:   story.CreatedAt,
	}
}

func CreateStory(ctx *gin.Context) {
	interviewID, err := utils.GetIDParam(ctx, "interview_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateStoryRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interview, err := findInterview(interviewID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	story := models.Story{
		InterviewID: interview.ID,
		Title:       body.Title,
		Description: body.Description,
		SituationA:  body.SituationA,
		SituationB:  body.SituationB,
	}

	if err := retry.Create(ctx.Request.Context(), db.DB, &story); err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(interview.ProjectID, "story")
	ctx.JSON(http.StatusCreated, storyResponse(story))
}

func ListStories(ctx *gin.Context) {
	interviewID, err := utils.GetIDParam(ctx, "interview_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stories []models.Story

	if err := db.DB.Preload("Forces").Where("interview_id = ?", interviewID).Order("created_at DESC").Find(&stories).Error; err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]StoryResponse, 0, len(stories))

	for _, story := range stories {
		response = append(response, storyResponse(story))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetStory(ctx *gin.Context) {
	storyID, err := utils.GetIDParam(ctx, "story_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var story models.Story

	if err := db.DB.Preload("Forces").First(&story, storyID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, storyResponse(story))
}

func UpdateStory(ctx *gin.Context) {
	storyID, err := utils.GetIDParam(ctx, "story_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateStoryRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story, err := findStory(storyID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.SituationA != nil {
		updates["situation_a"] = *body.SituationA
	}

	if body.SituationB != nil {
		updates["situation_b"] = *body.SituationB
	}

	if body.ClusterID != nil {
		updates["cluster_id"] = *body.ClusterID
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&story).Updates(updates).Error; err != nil {
		respondError(ctx, err)
		return
	}

	projectID, err := storyProjectID(story)

	if err == nil {
		BroadcastRefresh(projectID, "story")
	}

	if err := db.DB.Preload("Forces").First(&story, story.ID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, storyResponse(story))
}

func DeleteStory(ctx *gin.Context) {
	storyID, err := utils.GetIDParam(ctx, "story_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story, err := findStory(storyID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	projectID, projErr := storyProjectID(story)

	if err := db.DB.Delete(&story).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if projErr == nil {
		BroadcastRefresh(projectID, "story")
	}

	ctx.Status(http.StatusNoContent)
}

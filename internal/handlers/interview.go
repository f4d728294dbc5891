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

type CreateInterviewRequest struct {
	ParticipantName string     `json:"participant_name" binding:"required"`
	ParticipantAge  *int       `json:"participant_age" binding:"omitempty,gte=1,lte=119"`
	Gender          string     `json:"gender"`
	InterviewDate   *time.Time `json:"interview_date"`
	Context         string     `json:"context"`
}

type UpdateInterviewRequest struct {
	ParticipantName *string    `json:"participant_name"`
	ParticipantAge  *int       `json:"participant_age" binding:"omitempty,gte=1,lte=119"`
	Gender          *string    `json:"gender"`
	InterviewDate   *time.Time `json:"interview_date"`
	Context         *string    `json:"context"`
}

type InterviewResponse struct {
	ID              uint       `json:"id"`
	ProjectID       uint       `json:"project_id"`
	ParticipantName string     `json:"participant_name"`
	ParticipantAge  *int       `json:"participant_age"`
	Gender          string     `json:"gender"`
	InterviewDate   *time.Time `json:"interview_date"`
	Context         string     `json:"context"`
	CreatedAt       time.Time  `json:"created_at"`
}

func interviewResponse(interview models.Interview) InterviewResponse {
	return InterviewResponse{
		ID:              interview.ID,
		ProjectID:       interview.ProjectID,
		ParticipantName: interview.ParticipantName,
		ParticipantAge:  interview.ParticipantAge,
		Gender:          interview.Gender,
		InterviewDate:   interview.InterviewDate,
		Context:         interview.Context,
		CreatedAt:       interview.CreatedAt,
	}
}

func CreateInterview(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateInterviewRequest

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

	interview := models.Interview{
		ProjectID:       project.ID,
		ParticipantName: body.ParticipantName,
		ParticipantAge:  body.ParticipantAge,
		Gender:          body.Gender,
		InterviewDate:   body.InterviewDate,
		Context:         body.Context,
	}

	if err := retry.Create(ctx.Request.Context(), db.DB, &interview); err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(project.ID, "interview")
	ctx.JSON(http.StatusCreated, interviewResponse(interview))
}

func ListInterviews(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var interviews []models.Interview

	if err := db.DB.Where("project_id = ?", projectID).Order("created_at DESC").Find(&interviews).Error; err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]InterviewResponse, 0, len(interviews))

	for _, interview := range interviews {
		response = append(response, interviewResponse(interview))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateInterview(ctx *gin.Context) {
	interviewID, err := utils.GetIDParam(ctx, "interview_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateInterviewRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interview, err := findInterview(interviewID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if body.ParticipantName != nil {
		updates["participant_name"] = *body.ParticipantName
	}

	if body.ParticipantAge != nil {
		updates["participant_age"] = *body.ParticipantAge
	}

	if body.Gender != nil {
		updates["gender"] = *body.Gender
	}

	if body.InterviewDate != nil {
		updates["interview_date"] = *body.InterviewDate
	}

	if body.Context != nil {
		updates["context"] = *body.Context
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&interview).Updates(updates).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.First(&interview, interview.ID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(interview.ProjectID, "interview")
	ctx.JSON(http.StatusOK, interviewResponse(interview))
}

func DeleteInterview(ctx *gin.Context) {
	interviewID, err := utils.GetIDParam(ctx, "interview_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interview, err := findInterview(interviewID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.Delete(&interview).Error; err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(interview.ProjectID, "interview")
	ctx.Status(http.StatusNoContent)
}

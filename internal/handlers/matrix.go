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

type SetMatrixEntryRequest struct {
	// Match is tri-state: true, false, or null to reset the cell.
	Match *bool `json:"match"`
}

type MatrixEntryResponse struct {
	ID        uint      `json:"id"`
	StoryID   uint      `json:"story_id"`
	GroupID   uint      `json:"group_id"`
	Match     *bool     `json:"match"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MatrixResponse struct {
	Entries  []MatrixEntryResponse `json:"entries"`
	Progress float64               `json:"progress_percentage"`
}

func matrixEntryResponse(entry models.MatrixEntry) MatrixEntryResponse {
	return MatrixEntryResponse{
		ID:        entry.ID,
		StoryID:   entry.StoryID,
		GroupID:   entry.GroupID,
		Match:     entry.Match,
		UpdatedAt: entry.UpdatedAt,
	}
}

// SetMatrixEntry writes the cell for a (story, group) pair. The pair is
// unique; a second write updates the existing row instead of failing.
func SetMatrixEntry(ctx *gin.Context) {
	storyID, err := utils.GetIDParam(ctx, "story_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groupID, err := utils.GetIDParam(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body SetMatrixEntryRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story, err := findStory(storyID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	group, err := findGroup(groupID)

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
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Story and group belong to different projects"})
		return
	}

	var entry models.MatrixEntry

	err = db.DB.Where("story_id = ? AND group_id = ?", story.ID, group.ID).First(&entry).Error

	switch {
	case err == nil:
		if err := db.DB.Model(&entry).Update("match", body.Match).Error; err != nil {
			respondError(ctx, err)
			return
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.MatrixEntry{
			StoryID: story.ID,
			GroupID: group.ID,
			Match:   body.Match,
		}

		if err := retry.Create(ctx.Request.Context(), db.DB, &entry); err != nil {
			respondError(ctx, err)
			return
		}

	default:
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectID, "matrix")
	ctx.JSON(http.StatusOK, matrixEntryResponse(entry))
}

// GetMatrix returns every entry under a project plus the validation
// progress: answered cells over the full story-by-group grid.
func GetMatrix(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, stories, groups, err := loadMatrix(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := MatrixResponse{
		Entries:  make([]MatrixEntryResponse, 0, len(entries)),
		Progress: jtbd.Progress(countAnswered(entries), stories, groups),
	}

	for _, entry := range entries {
		response.Entries = append(response.Entries, matrixEntryResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

func countAnswered(entries []models.MatrixEntry) int {
	answered := 0
	for _, entry := range entries {
		if entry.Match != nil {
			answered++
		}
	}
	return answered
}

func loadMatrix(projectID uint) ([]models.MatrixEntry, int, int, error) {
	var entries []models.MatrixEntry

	err := db.DB.
		Joins("JOIN stories ON stories.id = matrix_entries.story_id").
		Joins("JOIN interviews ON interviews.id = stories.interview_id").
		Where("interviews.project_id = ?", projectID).
		Order("matrix_entries.created_at DESC").
		Find(&entries).Error

	if err != nil {
		return nil, 0, 0, err
	}

	var storyCount int64

	err = db.DB.Model(&models.Story{}).
		Joins("JOIN interviews ON interviews.id = stories.interview_id").
		Where("interviews.project_id = ?", projectID).
		Count(&storyCount).Error

	if err != nil {
		return nil, 0, 0, err
	}

	var groupCount int64

	if err := db.DB.Model(&models.ForceGroup{}).Where("project_id = ?", projectID).Count(&groupCount).Error; err != nil {
		return nil, 0, 0, err
	}

	return entries, int(storyCount), int(groupCount), nil
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/jtbd"
	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/forceboard-dev/forceboard/internal/store"
	"github.com/forceboard-dev/forceboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// snapshots collapses overlapping loads of the same project so concurrent
// clients share one database pass and one snapshot.
var snapshots store.Loader

type SnapshotResponse struct {
	Project    GetProjectResponse  `json:"project"`
	Interviews []InterviewResponse `json:"interviews"`
	Stories    []StoryResponse     `json:"stories"`
	Groups     []GroupResponse     `json:"groups"`
	Matrix     MatrixResponse      `json:"matrix"`
}

func GetSnapshot(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, _, err := snapshots.Load("project:"+strconv.FormatUint(uint64(projectID), 10), func() (interface{}, error) {
		return buildSnapshot(projectID)
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func buildSnapshot(projectID uint) (*SnapshotResponse, error) {
	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		return nil, err
	}

	var interviews []models.Interview

	if err := db.DB.Where("project_id = ?", projectID).Order("created_at DESC").Find(&interviews).Error; err != nil {
		return nil, err
	}

	var stories []models.Story

	err := db.DB.Preload("Forces").
		Joins("JOIN interviews ON interviews.id = stories.interview_id").
		Where("interviews.project_id = ?", projectID).
		Order("stories.created_at DESC").
		Find(&stories).Error

	if err != nil {
		return nil, err
	}

	var groups []models.ForceGroup

	if err := db.DB.Where("project_id = ?", projectID).Order("position ASC").Find(&groups).Error; err != nil {
		return nil, err
	}

	entries, storyCount, groupCount, err := loadMatrix(projectID)

	if err != nil {
		return nil, err
	}

	snapshot := &SnapshotResponse{
		Project:    projectResponse(project),
		Interviews: make([]InterviewResponse, 0, len(interviews)),
		Stories:    make([]StoryResponse, 0, len(stories)),
		Groups:     make([]GroupResponse, 0, len(groups)),
		Matrix: MatrixResponse{
			Entries:  make([]MatrixEntryResponse, 0, len(entries)),
			Progress: jtbd.Progress(countAnswered(entries), storyCount, groupCount),
		},
	}

	for _, interview := range interviews {
		snapshot.Interviews = append(snapshot.Interviews, interviewResponse(interview))
	}

	for _, story := range stories {
		snapshot.Stories = append(snapshot.Stories, storyResponse(story))
	}

	for _, group := range groups {
		snapshot.Groups = append(snapshot.Groups, groupResponse(group))
	}

	for _, entry := range entries {
		snapshot.Matrix.Entries = append(snapshot.Matrix.Entries, matrixEntryResponse(entry))
	}

	return snapshot, nil
}

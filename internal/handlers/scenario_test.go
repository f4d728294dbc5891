package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The full research flow: project, interview, story, forces, completeness.
func TestResearchFlow_EVStudy(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "alex", "alex@example.com")

	projectID := createProject(t, r, token, "EV Study")
	interviewID := createInterview(t, r, token, projectID, "Jane Doe", intPtr(34))
	storyID := createStory(t, r, token, interviewID, "Switch to EV")

	isComplete := func() bool {
		w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/stories/%d", storyID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var story struct {
			IsComplete bool `json:"is_complete"`
		}
		decodeBody(t, w, &story)
		return story.IsComplete
	}

	// No forces yet.
	assert.False(t, isComplete())

	// A push alone is not enough.
	createForce(t, r, token, storyID, "push", "high gas prices")
	assert.False(t, isComplete())

	// Habit and anxiety forces never make a story complete.
	createForce(t, r, token, storyID, "habit", "knows gas stations")
	createForce(t, r, token, storyID, "anxiety", "range anxiety")
	assert.False(t, isComplete())

	// Push plus pull completes the story.
	pullID := createForce(t, r, token, storyID, "pull", "tax incentive")
	assert.True(t, isComplete())

	// Removing the pull flips it back.
	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/forces/%d", pullID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, isComplete())
}

func TestSnapshot_AggregatesProjectSubtree(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "alex", "alex@example.com")

	projectID := createProject(t, r, token, "EV Study")
	interviewID := createInterview(t, r, token, projectID, "Jane Doe", intPtr(34))
	storyID := createStory(t, r, token, interviewID, "Switch to EV")
	createForce(t, r, token, storyID, "push", "high gas prices")
	createForce(t, r, token, storyID, "pull", "tax incentive")
	groupID := createGroup(t, r, token, projectID, "Costs", "push", false)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/stories/%d/matrix/%d", storyID, groupID), token, gin.H{"match": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/snapshot", projectID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snapshot struct {
		Project struct {
			Name string `json:"name"`
		} `json:"project"`
		Interviews []struct{} `json:"interviews"`
		Stories    []struct {
			IsComplete bool `json:"is_complete"`
		} `json:"stories"`
		Groups []struct{} `json:"groups"`
		Matrix struct {
			Entries  []struct{} `json:"entries"`
			Progress float64    `json:"progress_percentage"`
		} `json:"matrix"`
	}
	decodeBody(t, w, &snapshot)

	assert.Equal(t, "EV Study", snapshot.Project.Name)
	assert.Len(t, snapshot.Interviews, 1)
	require.Len(t, snapshot.Stories, 1)
	assert.True(t, snapshot.Stories[0].IsComplete)
	assert.Len(t, snapshot.Groups, 1)
	assert.Len(t, snapshot.Matrix.Entries, 1)
	assert.InDelta(t, 100.0, snapshot.Matrix.Progress, 0.001)
}

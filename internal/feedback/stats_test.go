package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyozai-live/backend/internal/models"
)

func TestStatisticsEmpty(t *testing.T) {
	s := Statistics(nil)
	assert.Zero(t, s.TotalCount)
	assert.NotNil(t, s.AverageRatings)
	assert.NotNil(t, s.CommonIssues)
	assert.Nil(t, s.LatestFeedback)
}

func TestStatisticsAggregates(t *testing.T) {
	records := []models.Feedback{
		{
			UserRole:        "instructor",
			RatingSyncSpeed: 5, RatingAnnotation: 4, RatingMetadata: 3, RatingUI: 4, RatingOverall: 5,
			TechnicalIssues: []string{"sync_delay", "annotation_lag"},
		},
		{
			UserRole:        "student",
			RatingSyncSpeed: 3, RatingAnnotation: 2, RatingMetadata: 3, RatingUI: 2, RatingOverall: 3,
			TechnicalIssues: []string{"sync_delay"},
		},
	}

	s := Statistics(records)

	assert.Equal(t, 2, s.TotalCount)
	assert.Equal(t, 1, s.InstructorCount)
	assert.Equal(t, 1, s.StudentCount)
	assert.InDelta(t, 4.0, s.AverageRatings["sync_speed"], 0.001)
	assert.InDelta(t, 3.0, s.AverageRatings["annotation"], 0.001)
	assert.InDelta(t, 4.0, s.AverageRatings["overall"], 0.001)

	require.Len(t, s.CommonIssues, 2)
	assert.Equal(t, IssueCount{Issue: "sync_delay", Count: 2}, s.CommonIssues[0])
	assert.Equal(t, IssueCount{Issue: "annotation_lag", Count: 1}, s.CommonIssues[1])

	require.NotNil(t, s.LatestFeedback)
	assert.Equal(t, "student", s.LatestFeedback.UserRole)
}

func TestStatisticsTopFiveIssues(t *testing.T) {
	issues := []string{"a", "b", "c", "d", "e", "f", "g"}
	var records []models.Feedback
	for i, issue := range issues {
		// issue i appears i+1 times, so "g" is the most common
		for j := 0; j <= i; j++ {
			records = append(records, models.Feedback{TechnicalIssues: []string{issue}})
		}
	}

	s := Statistics(records)

	require.Len(t, s.CommonIssues, 5)
	assert.Equal(t, "g", s.CommonIssues[0].Issue)
	assert.Equal(t, 7, s.CommonIssues[0].Count)
	assert.Equal(t, "c", s.CommonIssues[4].Issue)
}

func TestStatisticsIssueTieBreaksByName(t *testing.T) {
	records := []models.Feedback{
		{TechnicalIssues: []string{"zeta", "alpha"}},
	}
	s := Statistics(records)
	require.Len(t, s.CommonIssues, 2)
	assert.Equal(t, "alpha", s.CommonIssues[0].Issue)
	assert.Equal(t, "zeta", s.CommonIssues[1].Issue)
}

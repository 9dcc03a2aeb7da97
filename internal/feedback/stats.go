package feedback

import (
	"sort"

	"github.com/kyozai-live/backend/internal/models"
)

// IssueCount is one technical issue tag with its occurrence count.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// Stats is the aggregate view over all feedback records.
type Stats struct {
	TotalCount      int                `json:"total_count"`
	InstructorCount int                `json:"instructor_count"`
	StudentCount    int                `json:"student_count"`
	AverageRatings  map[string]float64 `json:"average_ratings"`
	CommonIssues    []IssueCount       `json:"common_issues"`
	LatestFeedback  *models.Feedback   `json:"latest_feedback,omitempty"`
}

// Statistics aggregates feedback records: average per rating axis,
// per-role counts and the five most common technical issues.
func Statistics(records []models.Feedback) Stats {
	if len(records) == 0 {
		return Stats{AverageRatings: map[string]float64{}, CommonIssues: []IssueCount{}}
	}

	sums := map[string]int{}
	issues := map[string]int{}
	instructors := 0
	for _, f := range records {
		sums["sync_speed"] += f.RatingSyncSpeed
		sums["annotation"] += f.RatingAnnotation
		sums["metadata"] += f.RatingMetadata
		sums["ui"] += f.RatingUI
		sums["overall"] += f.RatingOverall
		if f.UserRole == "instructor" {
			instructors++
		}
		for _, issue := range f.TechnicalIssues {
			issues[issue]++
		}
	}

	n := float64(len(records))
	averages := make(map[string]float64, len(sums))
	for axis, sum := range sums {
		averages[axis] = float64(sum) / n
	}

	common := make([]IssueCount, 0, len(issues))
	for issue, count := range issues {
		common = append(common, IssueCount{Issue: issue, Count: count})
	}
	sort.Slice(common, func(i, j int) bool {
		if common[i].Count != common[j].Count {
			return common[i].Count > common[j].Count
		}
		return common[i].Issue < common[j].Issue
	})
	if len(common) > 5 {
		common = common[:5]
	}

	latest := records[len(records)-1]
	return Stats{
		TotalCount:      len(records),
		InstructorCount: instructors,
		StudentCount:    len(records) - instructors,
		AverageRatings:  averages,
		CommonIssues:    common,
		LatestFeedback:  &latest,
	}
}

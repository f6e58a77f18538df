// internal/workers/recommendation/generate-roadmap/models.go
package generateroadmap

import (
	"cardmatch-workers/internal/models"
	"cardmatch-workers/internal/roadmap"
)

type Input struct {
	UserID      string              `json:"userId"`
	UserProfile *models.UserProfile `json:"userProfile"`
	Milestones  []roadmap.Milestone `json:"milestones"`
}

type Output struct {
	Milestones []roadmap.Milestone `json:"roadmapMilestones"`
}

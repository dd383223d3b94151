// Package services implements task-level computations that span the whole
// task list, such as Eisenhower prioritization.
package services

import (
	"sort"
	"time"

	schedulingDomain "github.com/cadencehq/cadence/internal/scheduling/domain"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
)

// Quadrant is an Eisenhower matrix cell.
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "do-first"
	QuadrantSchedule  Quadrant = "schedule"
	QuadrantDelegate  Quadrant = "delegate"
	QuadrantEliminate Quadrant = "eliminate"
)

// Advice returns the action the quadrant calls for.
func (q Quadrant) Advice() string {
	switch q {
	case QuadrantDoFirst:
		return "Urgent and important. Do it now."
	case QuadrantSchedule:
		return "Important but not urgent. Schedule a focus slot for it."
	case QuadrantDelegate:
		return "Urgent but not important. Delegate it if you can."
	default:
		return "Neither urgent nor important. Consider dropping it."
	}
}

const (
	urgencyWeight    = 0.4
	importanceWeight = 0.6

	// 1..10 scale thresholds for the quadrant split.
	urgentThreshold    = 7.0
	importantThreshold = 7.0

	// Urgency assigned to tasks without a due date.
	urgencyNoDeadline = 2.0
)

// PrioritizedTask is one ranked row of the prioritization result.
type PrioritizedTask struct {
	Task     *task.Task
	Score    float64
	Urgency  float64
	Quadrant Quadrant
}

// PriorityEngine ranks open tasks by weighted urgency and importance.
// It is stateless and safe for concurrent use.
type PriorityEngine struct{}

// NewPriorityEngine creates a priority engine.
func NewPriorityEngine() *PriorityEngine {
	return &PriorityEngine{}
}

// Prioritize ranks the open tasks in the list. Completed and cancelled
// tasks are skipped. The result is ordered by score descending; ties go to
// the earlier due date, then the title.
func (e *PriorityEngine) Prioritize(tasks []*task.Task, now time.Time) []PrioritizedTask {
	ranked := make([]PrioritizedTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsCompleted() || t.IsCancelled() {
			continue
		}

		urgency := urgencyScore(t.DueDate(), now)
		importance := importanceScore(t.Priority())
		score := urgency*urgencyWeight + importance*importanceWeight

		ranked = append(ranked, PrioritizedTask{
			Task:     t,
			Score:    score,
			Urgency:  urgency,
			Quadrant: quadrant(urgency, importance),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		di, dj := ranked[i].Task.DueDate(), ranked[j].Task.DueDate()
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return ranked[i].Task.Title() < ranked[j].Task.Title()
	})

	return ranked
}

// urgencyScore maps the due date distance onto a 1..10 scale.
func urgencyScore(dueDate *time.Time, now time.Time) float64 {
	if dueDate == nil {
		return urgencyNoDeadline
	}
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(nowDate).Hours() / 24)
	return schedulingDomain.UrgencyForDays(days).Score()
}

// importanceScore maps the priority onto a 1..10 scale.
func importanceScore(p value_objects.Priority) float64 {
	switch p {
	case value_objects.PriorityCritical:
		return 10
	case value_objects.PriorityHigh:
		return 8
	case value_objects.PriorityMedium:
		return 5
	default:
		return 3
	}
}

func quadrant(urgency, importance float64) Quadrant {
	urgent := urgency >= urgentThreshold
	important := importance >= importantThreshold

	switch {
	case urgent && important:
		return QuadrantDoFirst
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

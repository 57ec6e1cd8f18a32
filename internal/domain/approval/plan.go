package approval

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// PlanStep is one ordered (approver, level) pair of a routing plan
type PlanStep struct {
	ApproverID    int64
	ApprovalLevel int
}

// Plan is the ordered chain of approvers computed for one submission.
// An empty plan is valid and means immediate auto-approval.
type Plan struct {
	Steps []PlanStep
}

// Empty reports whether the plan has no steps
func (p Plan) Empty() bool {
	return len(p.Steps) == 0
}

// Tasks materializes the plan into a Pending task batch for the event
func (p Plan) Tasks(businessEventID uuid.UUID) []*Task {
	now := time.Now()
	tasks := make([]*Task, 0, len(p.Steps))
	for _, step := range p.Steps {
		tasks = append(tasks, &Task{
			ID:              uuid.New(),
			BusinessEventID: businessEventID,
			ApproverID:      step.ApproverID,
			ApprovalLevel:   step.ApprovalLevel,
			Status:          shared.TaskStatusPending,
			CreatedAt:       now,
		})
	}
	return tasks
}

// BuildPlan computes the routing plan from candidate rules. Only active
// rules whose threshold does not exceed the amount participate; the result
// is sorted ascending by approval level. Two matching rules on the same
// level are ambiguous configuration and are reported as ErrAmbiguousRules,
// never silently resolved.
func BuildPlan(rules []*Rule, amountCents int64) (Plan, error) {
	matched := make([]*Rule, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if rule.AmountThresholdCents > amountCents {
			continue
		}
		matched = append(matched, rule)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ApprovalLevel < matched[j].ApprovalLevel
	})

	steps := make([]PlanStep, 0, len(matched))
	for i, rule := range matched {
		if i > 0 && matched[i-1].ApprovalLevel == rule.ApprovalLevel {
			return Plan{}, ErrAmbiguousRules{
				EventType:     rule.EventType,
				DepartmentID:  rule.DepartmentID,
				ApprovalLevel: rule.ApprovalLevel,
			}
		}
		steps = append(steps, PlanStep{
			ApproverID:    rule.ApproverID,
			ApprovalLevel: rule.ApprovalLevel,
		})
	}

	return Plan{Steps: steps}, nil
}

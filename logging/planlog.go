package logging

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"wafstack/outputs"
	"wafstack/stack"
)

// PlanLogger writes the human-facing summary of a generated plan.
type PlanLogger interface {
	PlanGenerated(p *stack.Plan, o outputs.Outputs)
	ValidationFailed(err error)
}

// NewZerologPlanLogger creates a plan logger that emits the summary a
// consumer of the plan document would want to see, rendered through
// zerolog.
func NewZerologPlanLogger(logger zerolog.Logger) PlanLogger {
	return &zerologPlanLogger{logger: logger}
}

type zerologPlanLogger struct {
	logger zerolog.Logger
}

type planSummaryEntry struct {
	PlanID        string                 `json:"planId"`
	WebACL        string                 `json:"webAcl"`
	ResourceCount int                    `json:"resourceCount"`
	Resources     []planSummaryResource  `json:"resources"`
	Logging       outputs.LoggingSummary `json:"logging"`
	Features      outputs.Features       `json:"features"`
}

type planSummaryResource struct {
	Type    string `json:"type"`
	Logical string `json:"logical"`
}

func (l *zerologPlanLogger) PlanGenerated(p *stack.Plan, o outputs.Outputs) {
	entry := planSummaryEntry{
		PlanID:        p.ID,
		WebACL:        o.WebACLName,
		ResourceCount: o.ResourceCount,
		Logging:       o.Logging,
		Features:      o.Features,
	}
	for _, r := range p.Resources {
		entry.Resources = append(entry.Resources, planSummaryResource{
			Type:    string(r.Type),
			Logical: r.Logical,
		})
	}

	bb, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON plan summary")
		return
	}

	l.logger.Info().Msgf("Plan summary:\n%s\n", bb)
}

func (l *zerologPlanLogger) ValidationFailed(err error) {
	l.logger.Error().Err(err).Msg("Configuration rejected before materialization")
}

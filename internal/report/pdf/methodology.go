package pdf

import (
	"fmt"
	"sort"

	"github.com/carbonconstruct/ledger/internal/report/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Renderer produces the printable methodology statement attached to
// regulatory submissions.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderMethodology(statement domain.MethodologyStatement, summary domain.ProjectSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, "Carbon Calculation Methodology Statement", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
		}),
	)

	m.AddRow(24,
		col.New(12).Add(
			text.New("Project: "+statement.ProjectID, props.Text{Top: 0}),
			text.New("Framework: "+statement.CalculationFramework, props.Text{Top: 5}),
			text.New("Generated: "+statement.GeneratedAt.Format("2 January 2006 15:04 MST"), props.Text{Top: 10}),
			text.New(statement.AuditTrail, props.Text{Top: 15}),
		),
	)

	m.AddRow(12,
		text.NewCol(12, "Emissions Summary", props.Text{Size: 13, Style: fontstyle.Bold, Top: 2}),
	)
	m.AddRow(10,
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: %.2f kg CO2e (%.2f t)", summary.TotalCO2eKg, summary.TotalCO2eTonnes), props.Text{Top: 0}),
		),
	)
	for _, activity := range sortedActivities(summary.Breakdown) {
		breakdown := summary.Breakdown[activity]
		line := fmt.Sprintf("%s: %d calculations, %.2f kg CO2e", activity, breakdown.Count, breakdown.CO2eKg)
		if breakdown.UncertaintyPct != nil {
			line += fmt.Sprintf(" (±%.1f%%)", *breakdown.UncertaintyPct)
		}
		m.AddRow(8, text.NewCol(12, line, props.Text{Size: 10}))
	}

	m.AddRow(12,
		text.NewCol(12, "Methods Applied", props.Text{Size: 13, Style: fontstyle.Bold, Top: 2}),
	)
	for _, method := range statement.MethodsApplied {
		m.AddRow(8, text.NewCol(12, "• "+method, props.Text{Size: 10}))
	}

	m.AddRow(12,
		text.NewCol(12, "Factor Sources", props.Text{Size: 13, Style: fontstyle.Bold, Top: 2}),
	)
	for _, source := range statement.FactorSources {
		m.AddRow(8, text.NewCol(12, "• "+source, props.Text{Size: 9}))
	}

	m.AddRow(12,
		text.NewCol(12, "Uncertainty", props.Text{Size: 13, Style: fontstyle.Bold, Top: 2}),
	)
	m.AddRow(10, text.NewCol(12, statement.Uncertainty, props.Text{Size: 10}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate methodology pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func sortedActivities(breakdown map[string]domain.ActivityBreakdown) []string {
	activities := make([]string, 0, len(breakdown))
	for activity := range breakdown {
		activities = append(activities, activity)
	}
	sort.Strings(activities)
	return activities
}

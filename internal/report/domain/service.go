package domain

import "context"

// Service derives summaries and regulatory exports from the audit trail.
// Every operation is a pure read; nothing here mutates state.
type Service interface {
	ProjectSummary(ctx context.Context, projectID string) (ProjectSummary, error)
	NGERExport(ctx context.Context, projectID string) (NGERReport, error)
	NCCExport(ctx context.Context, projectID string) (NCCReport, error)
	Methodology(ctx context.Context, projectID string) (MethodologyStatement, error)
	MethodologyPDF(ctx context.Context, projectID string) ([]byte, error)
}

package report

import(
	"context"
)

// ReportingContext is embedded in Report, so report and summarize funcs
// can hand the report straight to blocking operations (path optimization
// fans out workers, and wants a cancelable context).
type ReportingContext struct {
	context.Context
}

func (r *Report)SetContext(ctx context.Context) {
	r.ReportingContext.Context = ctx
}

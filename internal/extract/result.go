package extract

import (
	"time"

	"github.com/aipengineer/quackmetadata/internal/metadata"
	"github.com/aipengineer/quackmetadata/internal/schema"
)

// Reason names the terminal failure class of an extraction run.
type Reason string

const (
	ReasonConfiguration Reason = "configuration-error"
	ReasonFatalProvider Reason = "fatal-provider-error"
	ReasonMaxRetries    Reason = "max-retries-exceeded"
	ReasonCancelled     Reason = "cancelled"
)

// Result is the single terminal outcome of one extraction run. Every
// failure class is carried here as data; callers branch on Success
// without any error handling of their own.
type Result struct {
	Success    bool
	Metadata   *metadata.Metadata
	Attempts   int
	Reason     Reason
	Detail     string             // human-readable failure detail
	Violations []schema.Violation // last attempt's violations, if any
	RawSnippet string             // excerpt of the last raw response
}

// Record is the persisted artifact: the result plus source provenance.
// Its field names are the interoperability contract with downstream
// consumers.
type Record struct {
	Source        string             `json:"source"`
	ExtractedAt   time.Time          `json:"extracted_at"`
	Attempts      int                `json:"attempts"`
	Success       bool               `json:"success"`
	Metadata      *metadata.Metadata `json:"metadata,omitempty"`
	FailureReason string             `json:"failure_reason,omitempty"`
	FailureDetail string             `json:"failure_detail,omitempty"`
	Violations    []string           `json:"violations,omitempty"`
}

// Package wraps a Result with provenance for persistence. It performs no
// logic beyond shape normalization; failure detail is preserved verbatim.
func Package(source string, res Result, extractedAt time.Time) Record {
	rec := Record{
		Source:      source,
		ExtractedAt: extractedAt,
		Attempts:    res.Attempts,
		Success:     res.Success,
		Metadata:    res.Metadata,
	}
	if !res.Success {
		rec.FailureReason = string(res.Reason)
		rec.FailureDetail = res.Detail
		rec.Violations = schema.Strings(res.Violations)
	}
	return rec
}

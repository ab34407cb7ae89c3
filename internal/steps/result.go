// Package steps models the outcome of best-effort installer steps.
package steps

import "fmt"

// Step names.
const (
	Backup      = "BACKUP"
	Restore     = "RESTORE"
	Providers   = "PROVIDERS"
	Priority    = "PRIORITY_CONFIG"
	Copy        = "COPY_BUNDLE"
	Skills      = "SKILLS"
	Permissions = "PERMISSIONS"
	Companion   = "COMPANION"
	Roles       = "COMPANION_ROLES"
	Records     = "RECORDS"
	Remove      = "REMOVE"
)

// Outcome labels how a step finished.
type Outcome string

const (
	OK      Outcome = "ok"
	Warning Outcome = "warning"
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

// Result describes one step.
type Result struct {
	Step    string
	Outcome Outcome
	Message string
	// Fix is an optional remedy shown with warnings and failures.
	Fix     string
	Details []string
}

// OKf builds a successful result.
func OKf(step string, format string, args ...any) Result {
	return Result{Step: step, Outcome: OK, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning result.
func Warnf(step string, format string, args ...any) Result {
	return Result{Step: step, Outcome: Warning, Message: fmt.Sprintf(format, args...)}
}

// Skipf builds a skipped result.
func Skipf(step string, format string, args ...any) Result {
	return Result{Step: step, Outcome: Skipped, Message: fmt.Sprintf(format, args...)}
}

// Failf builds a failed result.
func Failf(step string, format string, args ...any) Result {
	return Result{Step: step, Outcome: Failed, Message: fmt.Sprintf(format, args...)}
}

// WithFix returns a copy of r with Fix set.
func (r Result) WithFix(fix string) Result {
	r.Fix = fix
	return r
}

// WithDetails returns a copy of r with details appended.
func (r Result) WithDetails(details ...string) Result {
	r.Details = append(append([]string(nil), r.Details...), details...)
	return r
}

// NeedsAttention reports whether r should be surfaced as a warning.
func (r Result) NeedsAttention() bool {
	return r.Outcome == Warning || r.Outcome == Failed
}

func (r Result) String() string {
	s := "WARNING " + r.Step + ": " + r.Message
	if r.Outcome == Failed {
		s = "FAILED " + r.Step + ": " + r.Message
	}
	if r.Fix != "" {
		s += "\n  fix: " + r.Fix
	}
	for _, d := range r.Details {
		s += "\n  details: " + d
	}
	return s
}

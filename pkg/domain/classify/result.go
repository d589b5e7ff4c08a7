package classify

import (
	"fmt"
	"time"
)

// Result aggregates a classification run.
type Result struct {
	Files         []ClassifiedFile
	TotalFiles    int
	Distribution  map[string]int
	LowConfidence []ClassifiedFile
	Elapsed       time.Duration
}

// Validate checks internal consistency of the result.
func (r *Result) Validate() []error {
	var errs []error
	if r.TotalFiles != len(r.Files) {
		errs = append(errs, fmt.Errorf("total %d does not match %d classified files", r.TotalFiles, len(r.Files)))
	}
	sum := 0
	for _, n := range r.Distribution {
		sum += n
	}
	if sum != r.TotalFiles {
		errs = append(errs, fmt.Errorf("distribution sums to %d, expected %d", sum, r.TotalFiles))
	}
	for _, cf := range r.LowConfidence {
		if cf.Confidence >= 0.5 {
			errs = append(errs, fmt.Errorf("file %s listed as low confidence with %.2f", cf.Path, cf.Confidence))
		}
	}
	for _, cf := range r.Files {
		if cf.Confidence < 0 || cf.Confidence > 1 {
			errs = append(errs, fmt.Errorf("file %s has confidence %.2f outside [0,1]", cf.Path, cf.Confidence))
		}
	}
	return errs
}

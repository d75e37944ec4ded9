package extract

// SkipReason names why a row produced no record.
type SkipReason string

const (
	SkipMissingFromAccount SkipReason = "missing_from_account"
	SkipMissingToAccount   SkipReason = "missing_to_account"
	SkipMissingAccount     SkipReason = "missing_account"
	SkipNonPositiveAmount  SkipReason = "non_positive_amount"
)

// Stats counts the rows seen and skipped by one extraction.
type Stats struct {
	Rows      int                `json:"rows"`
	Extracted int                `json:"extracted"`
	Skipped   map[SkipReason]int `json:"skipped,omitempty"`
}

func (s *Stats) skip(reason SkipReason) {
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[reason]++
}

func (s *Stats) add(o Stats) {
	s.Rows += o.Rows
	s.Extracted += o.Extracted
	for r, n := range o.Skipped {
		if s.Skipped == nil {
			s.Skipped = make(map[SkipReason]int)
		}
		s.Skipped[r] += n
	}
}

// SkippedTotal returns the number of rows dropped for any reason.
func (s Stats) SkippedTotal() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

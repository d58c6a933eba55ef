package coherence

import (
	"bufio"
	"fmt"
	"io"

	"rpy-translator/internal/textutil"
)

const maxQuoted = 200

// Report collects the issues of one file.
type Report struct {
	File   string
	Issues []Issue
}

// HasIssues reports whether anything was found.
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// Grouped returns the issues by type, each group in line order.
func (r *Report) Grouped() map[IssueType][]Issue {
	groups := make(map[IssueType][]Issue)
	for _, is := range r.Issues {
		groups[is.Type] = append(groups[is.Type], is)
	}
	return groups
}

// Counts returns the number of issues per type.
func (r *Report) Counts() map[IssueType]int {
	counts := make(map[IssueType]int)
	for _, is := range r.Issues {
		counts[is.Type]++
	}
	return counts
}

// Format writes the human-readable warning file.
func (r *Report) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Coherence report for %s\n", r.File)
	fmt.Fprintf(bw, "Total issues: %d\n", len(r.Issues))

	groups := r.Grouped()
	for _, t := range IssueTypes {
		issues := groups[t]
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n== %s (%d) ==\n", t, len(issues))
		for _, is := range issues {
			if is.OldLine > 0 {
				fmt.Fprintf(bw, "line %d (old line %d): %s\n", is.Line, is.OldLine, is.Detail)
				fmt.Fprintf(bw, "  old: %s\n", textutil.Truncate(is.Old, maxQuoted))
			} else {
				fmt.Fprintf(bw, "line %d: %s\n", is.Line, is.Detail)
			}
			fmt.Fprintf(bw, "  new: %s\n", textutil.Truncate(is.New, maxQuoted))
		}
	}
	return bw.Flush()
}

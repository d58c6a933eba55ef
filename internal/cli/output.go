package cli

import (
	"fmt"

	"github.com/fatih/color"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/coherence"
	"rpy-translator/internal/pipeline"
)

var (
	cyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.Bold, color.FgYellow).SprintFunc()
)

func printFailure(path string, err error) {
	fmt.Printf("%s %s: %v\n", red("FAIL"), path, err)
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("     %s %s\n", yellow("!"), w)
	}
}

func printExtract(r *pipeline.ExtractResult) {
	fmt.Printf("%s %s -> %s\n", green("OK"), r.Source, cyan(r.Paths.Extracted(artifact.Main)))
	fmt.Printf("     segments: %d  emphasis: %d  empty: %d  glossary: %d\n",
		r.Segments, r.Emphasis, r.Empty, r.Glossary)
	printWarnings(r.Warnings)
}

func printReconstruct(r *pipeline.ReconstructResult) {
	fmt.Printf("%s %s -> %s (%s)\n", green("OK"), r.Source, cyan(r.Output), r.Mode)
	fmt.Printf("     segments used: %d/%d\n", r.Stats.Consumed, r.Stats.Expected)
	printWarnings(r.Warnings)
}

func printValidation(path string, v *artifact.Validation) {
	status := green("OK")
	if !v.OK() {
		status = yellow("MISMATCH")
	}
	fmt.Printf("%s %s\n", status, path)
	for _, c := range v.Counts {
		if c.Expected == 0 && c.Actual == 0 {
			continue
		}
		line := fmt.Sprintf("     %-9s expected %d, found %d", c.Kind, c.Expected, c.Actual)
		switch {
		case c.Missing > 0:
			line += red(fmt.Sprintf(" (%d missing)", c.Missing))
		case c.Extra > 0:
			line += red(fmt.Sprintf(" (%d extra)", c.Extra))
		}
		fmt.Println(line)
	}
}

func printCheck(path string, r *pipeline.CheckResult) {
	if !r.Report.HasIssues() {
		fmt.Printf("%s %s\n", green("OK"), path)
		return
	}
	fmt.Printf("%s %s: %d issues -> %s\n", yellow("WARN"), path, len(r.Report.Issues), cyan(r.WarningsPath))
	counts := r.Report.Counts()
	for _, t := range coherence.IssueTypes {
		if n := counts[t]; n > 0 {
			fmt.Printf("     %-22s %d\n", t, n)
		}
	}
}

package batch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileSummary is the outcome of analyzing one transcript.
type FileSummary struct {
	Path          string
	Format        string
	Turns         int
	MaxScore      *int
	LastScore     *int
	TurningPoints int
	ReportDir     string
	DuplicateOf   string
	Err           error
}

// FormatSummary renders file summaries grouped by directory.
func FormatSummary(summaries []FileSummary) string {
	byDir := make(map[string][]FileSummary)
	for _, s := range summaries {
		dir := filepath.Dir(s.Path)
		byDir[dir] = append(byDir[dir], s)
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var sb strings.Builder
	sb.WriteString("=== Batch Summary ===\n")

	analyzed, drops, failed, dups := 0, 0, 0, 0
	for _, dir := range dirs {
		files := byDir[dir]
		fmt.Fprintf(&sb, "\n%s (%d files)\n", dir, len(files))
		for _, f := range files {
			name := filepath.Base(f.Path)
			switch {
			case f.Err != nil:
				failed++
				fmt.Fprintf(&sb, "  - %s: error: %v\n", name, f.Err)
			case f.DuplicateOf != "":
				dups++
				fmt.Fprintf(&sb, "  - %s: duplicate of %s\n", name, filepath.Base(f.DuplicateOf))
			default:
				analyzed++
				drops += f.TurningPoints
				fmt.Fprintf(&sb, "  - %s [%s]: %d turns, max %s, last %s, %d drops\n",
					name, f.Format, f.Turns, scoreStr(f.MaxScore), scoreStr(f.LastScore), f.TurningPoints)
			}
		}
	}

	fmt.Fprintf(&sb, "\nFiles analyzed: %d\n", analyzed)
	fmt.Fprintf(&sb, "Turning points: %d\n", drops)
	fmt.Fprintf(&sb, "Duplicates skipped: %d\n", dups)
	fmt.Fprintf(&sb, "Errors: %d\n", failed)
	return sb.String()
}

func scoreStr(p *int) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *p)
}

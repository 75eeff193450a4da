package report

import (
	"fmt"
	"strings"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// highNullThreshold marks columns where most values are missing.
const highNullThreshold = 0.5

// suspectFKThreshold flags declared or detected FK columns that are almost
// entirely null, which usually means the link was never populated.
const suspectFKThreshold = 0.99

// Curation renders the data-quality worksheet: items a human curator should
// confirm, repair, or archive before the schema is trusted downstream.
func Curation(res *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("# Data Curation Report\n\n")

	var totalRows, totalColumns, failed int
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		if info.LoadError != "" {
			failed++
			continue
		}
		totalRows += info.RowCount
		totalColumns += info.ColumnCount
	}
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- Tables analyzed: %d\n", len(res.Tables))
	fmt.Fprintf(&b, "- Tables failed to load: %d\n", failed)
	fmt.Fprintf(&b, "- Total rows: %d\n", totalRows)
	fmt.Fprintf(&b, "- Total columns: %d\n", totalColumns)
	fmt.Fprintf(&b, "- Explicit relationships: %d\n", len(res.Relationships))
	fmt.Fprintf(&b, "- Implicit relationships suggested: %d\n\n", len(res.ImplicitRelationships))

	if failed > 0 {
		b.WriteString("## Unreadable Sources\n")
		for _, id := range res.TableIDs() {
			info := res.Tables[id]
			if info.LoadError != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", id, info.LoadError)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Broken Foreign Keys\n")
	found := false
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		for _, fk := range info.Keys.ForeignKeys {
			p := info.Profile(fk)
			if p != nil && p.NullRatio >= suspectFKThreshold {
				found = true
				fmt.Fprintf(&b, "- **%s.%s** is %s null; the reference is effectively unused\n",
					id, fk, pct(p.NullRatio))
			}
		}
	}
	if !found {
		b.WriteString("None found.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Dead Columns\n")
	found = false
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		if len(info.DeadColumns) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(&b, "- **%s**: %s\n", id, strings.Join(info.DeadColumns, ", "))
	}
	if !found {
		b.WriteString("None found.\n")
	}
	b.WriteString("\n")

	b.WriteString("## High-Null Columns (>50%)\n")
	found = false
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		for _, col := range info.Columns {
			if col.Profile.NullRatio > highNullThreshold && !col.Profile.Dead {
				found = true
				fmt.Fprintf(&b, "- **%s.%s**: %s null\n", id, col.Name, pct(col.Profile.NullRatio))
			}
		}
	}
	if !found {
		b.WriteString("None found.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Dimension Candidates\n")
	found = false
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		if len(info.DimensionCandidates) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(&b, "- **%s**: %s could be extracted into lookup tables\n",
			id, strings.Join(info.DimensionCandidates, ", "))
	}
	if !found {
		b.WriteString("None found.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Workflow Highlights\n")
	found = false
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		if info.Workflow == nil {
			continue
		}
		found = true
		fmt.Fprintf(&b, "- **%s**: `%s` with %d states and %d observed transitions\n",
			id, info.Workflow.StatusColumn, len(info.Workflow.States), len(info.Workflow.Transitions))
	}
	if !found {
		b.WriteString("None found.\n")
	}

	return b.String()
}

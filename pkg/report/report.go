// Package report renders analysis results into human- and machine-oriented
// documents. It is a pure consumer of the result structs: no raw row data is
// reachable from here.
package report

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// tableLabel extracts a clean identifier from a table's file path.
func tableLabel(tableID string) string {
	return path.Base(strings.ReplaceAll(tableID, "\\", "/"))
}

// entityLabel derives a singular entity name from a table identifier, e.g.
// "invoices.csv" becomes "invoice".
func entityLabel(tableID string) string {
	base := tableLabel(tableID)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return inflection.Singular(strings.ToLower(base))
}

func pct(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// Markdown renders the primary human-readable report.
func Markdown(res *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("# Integrated Structural Analysis Report\n\n")

	b.WriteString("## 1. Primary and Foreign Keys\n")
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		fmt.Fprintf(&b, "### %s\n", id)
		fmt.Fprintf(&b, "- PKs: %s\n", joinOr(info.Keys.PrimaryKeys, "none"))
		fmt.Fprintf(&b, "- FKs: %s\n", joinOr(info.Keys.ForeignKeys, "none"))
	}

	b.WriteString("## 2. Business Rules\n")
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		if len(info.BusinessFields) == 0 && len(info.TemporalRules) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n", id)
		if len(info.BusinessFields) > 0 {
			b.WriteString("#### 2.1 Domain Fields\n")
			for _, field := range info.BusinessFields {
				fmt.Fprintf(&b, "- **%s**: probable domain (%s) - null%%=%s, unique%%=%s\n",
					field.Column, strings.Join(field.Samples, ", "), pct(field.NullRatio), pct(field.UniqueRatio))
			}
		}
		if len(info.TemporalRules) > 0 {
			b.WriteString("#### 2.2 Temporal Consistency\n")
			for _, rule := range info.TemporalRules {
				fmt.Fprintf(&b, "- Rule: %s\n", rule)
			}
		}
	}

	b.WriteString("## 3. Relational Flow (PK -> FK)\n")
	if len(res.Relationships) == 0 {
		b.WriteString("No flow identified.\n")
	}
	for _, rel := range res.Relationships {
		fmt.Fprintf(&b, "- %s(%s) -> %s(%s)\n", rel.FromTable, rel.FKColumn, rel.ToTable, rel.PKColumn)
	}
	if len(res.ImplicitRelationships) > 0 {
		b.WriteString("### 3.1 Suggested Implicit FKs\n")
		for _, rel := range res.ImplicitRelationships {
			fmt.Fprintf(&b, "- %s(%s) -> %s(%s) (confidence %d%%)\n",
				rel.FromTable, rel.FKColumn, rel.ToTable, rel.PKColumn, int(math.Round(rel.Confidence*100)))
		}
	}

	b.WriteString("## 4. Recommended Indexes\n")
	b.WriteString("| table | column | type |\n|-------|--------|------|\n")
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		for _, pk := range info.Keys.PrimaryKeys {
			fmt.Fprintf(&b, "| %s | %s | PK |\n", id, pk)
		}
		for _, fk := range info.Keys.ForeignKeys {
			fmt.Fprintf(&b, "| %s | %s | FK |\n", id, fk)
		}
		for _, field := range info.BusinessFields {
			fmt.Fprintf(&b, "| %s | %s | filter |\n", id, field.Column)
		}
	}

	b.WriteString("## 5. Data Dictionary (Sample)\n")
	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		fmt.Fprintf(&b, "### %s\n", id)
		b.WriteString("| column | kind | category | null% | unique% | examples |\n")
		b.WriteString("|--------|------|----------|-------|---------|----------|\n")
		for _, col := range info.Columns {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				col.Name, col.Kind, col.Profile.Category,
				pct(col.Profile.NullRatio), pct(col.Profile.UniqueRatio),
				strings.Join(col.Profile.Samples, ", "))
		}
	}

	return b.String()
}

package report

import (
	"fmt"
	"strings"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// ragMarker emits a machine-parsable chunk boundary. Downstream retrieval
// pipelines split the document on these comments, so the format is stable.
func ragMarker(b *strings.Builder, kind, subject string) {
	fmt.Fprintf(b, "<!-- @rag:%s=%s -->\n", kind, subject)
}

// RAG renders a chunk-annotated variant of the analysis for ingestion into
// retrieval systems. Every section is prefixed with an HTML comment marker
// naming the chunk so embedders can index table-scoped passages.
func RAG(res *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("# Structural Knowledge Base\n\n")

	for _, id := range res.TableIDs() {
		info := res.Tables[id]
		entity := entityLabel(id)

		ragMarker(&b, "table", id)
		fmt.Fprintf(&b, "## Entity: %s (%s)\n", entity, id)
		if info.LoadError != "" {
			fmt.Fprintf(&b, "Table could not be loaded: %s\n\n", info.LoadError)
			continue
		}
		fmt.Fprintf(&b, "The %s table holds %d rows across %d columns.\n",
			entity, info.RowCount, info.ColumnCount)
		fmt.Fprintf(&b, "Primary keys: %s. Foreign keys: %s.\n\n",
			joinOr(info.Keys.PrimaryKeys, "none detected"),
			joinOr(info.Keys.ForeignKeys, "none detected"))

		ragMarker(&b, "columns", id)
		for _, col := range info.Columns {
			fmt.Fprintf(&b, "- `%s` (%s, %s): %s null, %s unique",
				col.Name, col.Kind, col.Profile.Category,
				pct(col.Profile.NullRatio), pct(col.Profile.UniqueRatio))
			if col.Profile.Dead {
				b.WriteString(", dead column")
			}
			if len(col.Profile.Samples) > 0 {
				fmt.Fprintf(&b, ", e.g. %s", strings.Join(col.Profile.Samples, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if len(info.TemporalRules) > 0 || len(info.MultivariateRules) > 0 || len(info.DerivedFields) > 0 {
			ragMarker(&b, "rules", id)
			for _, rule := range info.TemporalRules {
				fmt.Fprintf(&b, "- Temporal invariant: %s\n", rule)
			}
			for _, rule := range info.MultivariateRules {
				fmt.Fprintf(&b, "- Conditional rule: when %s, %s (%.1f%% violations)\n",
					rule.Condition(), rule.Requirement(), rule.ViolationPct*100)
			}
			for _, d := range info.DerivedFields {
				fmt.Fprintf(&b, "- Derived field: %s appears computed as %s (r=%.2f)\n",
					d.Field, d.DerivedFrom(), d.Correlation)
			}
			b.WriteString("\n")
		}

		if info.Workflow != nil {
			ragMarker(&b, "workflow", id)
			fmt.Fprintf(&b, "Status column `%s` moves through states: %s.\n",
				info.Workflow.StatusColumn, strings.Join(info.Workflow.States, ", "))
			for _, t := range info.Workflow.Transitions {
				fmt.Fprintf(&b, "- %s -> %s\n", t.From, t.To)
			}
			b.WriteString("\n")
		}
	}

	if len(res.Relationships) > 0 || len(res.ImplicitRelationships) > 0 {
		ragMarker(&b, "relationships", "global")
		b.WriteString("## Cross-Table Relationships\n")
		for _, rel := range res.Relationships {
			fmt.Fprintf(&b, "- %s.%s references %s.%s\n",
				entityLabel(rel.FromTable), rel.FKColumn, entityLabel(rel.ToTable), rel.PKColumn)
		}
		for _, rel := range res.ImplicitRelationships {
			fmt.Fprintf(&b, "- %s.%s likely references %s.%s (value overlap %.0f%%)\n",
				entityLabel(rel.FromTable), rel.FKColumn, entityLabel(rel.ToTable), rel.PKColumn,
				rel.Confidence*100)
		}
		b.WriteString("\n")
	}

	return b.String()
}

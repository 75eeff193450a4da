package report

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/models"
)

// Artifacts written into the report directory for each run.
const (
	MarkdownFile = "analysis_report.md"
	RefinedFile  = "analysis_report_refined.md"
	RAGFile      = "rag_knowledge_base.md"
	CurationFile = "curation_report.md"
	YAMLFile     = "analysis.yaml"
)

// Writer renders every report artifact for a run into a target directory.
type Writer struct {
	dir    string
	logger *zap.Logger
}

func NewWriter(dir string, logger *zap.Logger) *Writer {
	return &Writer{
		dir:    dir,
		logger: logger.Named("report-writer"),
	}
}

// WriteAll renders the markdown, RAG, curation, and YAML artifacts. refined is
// optional; when non-empty it is written alongside the raw markdown report.
func (w *Writer) WriteAll(res *models.AnalysisResult, refined string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	if err := w.writeText(MarkdownFile, Markdown(res)); err != nil {
		return err
	}
	if err := w.writeText(RAGFile, RAG(res)); err != nil {
		return err
	}
	if err := w.writeText(CurationFile, Curation(res)); err != nil {
		return err
	}
	if refined != "" {
		if err := w.writeText(RefinedFile, refined); err != nil {
			return err
		}
	}

	path := filepath.Join(w.dir, YAMLFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteYAML(f, res); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Info("Report artifacts written",
		zap.String("dir", w.dir),
		zap.Int("tables", len(res.Tables)),
		zap.Bool("refined", refined != ""))
	return nil
}

func (w *Writer) writeText(name, content string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

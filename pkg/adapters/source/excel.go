package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/inferra-data/inferra-engine/pkg/apperrors"
	"github.com/inferra-data/inferra-engine/pkg/models"
)

// excelSource reads the first sheet of an .xlsx/.xlsm workbook.
type excelSource struct {
	id   string
	path string
}

func (s *excelSource) ID() string { return s.id }

func (s *excelSource) Load(ctx context.Context) (*models.Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", apperrors.ErrSourceUnreadable, s.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnreadable, s.path, err)
	}

	table, err := tableFromRows(s.id, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return table, nil
}

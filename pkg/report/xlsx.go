package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary         = "Summary"
	SheetCategories      = "Categories"
	SheetChecks          = "Checks"
	SheetRecommendations = "Recommendations"
	SheetPages           = "Pages"
)

// ContentType is the MIME type of the workbook written by WriteXLSX
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheet struct {
	name    string
	columns []string
	rows    [][]any
}

// WriteXLSX renders an audit report as a workbook with one sheet per section
func WriteXLSX(w io.Writer, report *models.AuditReport) error {
	if report == nil {
		return fmt.Errorf("no report to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E79"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []sheet{
		summarySheet(report),
		categoriesSheet(report),
		checksSheet(report),
		recommendationsSheet(report),
		pagesSheet(report),
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]any, len(s.columns))
	for i, col := range s.columns {
		header[i] = col
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", s.name, err)
	}

	last, _ := excelize.CoordinatesToCellName(len(s.columns), 1)
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", s.name, err)
	}

	for i, col := range s.columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(col) + 5)
		if width < 15 {
			width = 15
		}
		if width > 60 {
			width = 60
		}
		_ = f.SetColWidth(s.name, colName, colName, width)
	}

	for r, row := range s.rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		values := row
		if err := f.SetSheetRow(s.name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", r+2, s.name, err)
		}
	}
	return nil
}

func summarySheet(r *models.AuditReport) sheet {
	return sheet{
		name:    SheetSummary,
		columns: []string{"Field", "Value"},
		rows: [][]any{
			{"Audit ID", r.ID},
			{"Status", string(r.Status)},
			{"Overall Score", r.OverallScore},
			{"Overall Grade", r.OverallGrade},
			{"Pages Analyzed", r.PagesAnalyzed},
			{"Pages Succeeded", r.PagesSucceeded},
			{"Pages Failed", r.PagesFailed},
			{"Pages Skipped", r.PagesSkipped},
			{"Pages Not Selected", r.PagesNotSelected},
			{"Started At", r.StartedAt.Format(time.RFC3339)},
			{"Completed At", r.CompletedAt.Format(time.RFC3339)},
		},
	}
}

func categoriesSheet(r *models.AuditReport) sheet {
	s := sheet{
		name:    SheetCategories,
		columns: []string{"Category", "Score", "Grade", "Attempted", "Pages", "Message", "Source Pages"},
	}
	for _, c := range models.AllCategories {
		result, ok := r.Categories[c]
		if !ok {
			continue
		}
		s.rows = append(s.rows, []any{
			c.DisplayName(), result.Score, result.Grade, result.Attempted, result.PageCount,
			result.Message, strings.Join(result.SourcePages, "\n"),
		})
	}
	return s
}

func checksSheet(r *models.AuditReport) sheet {
	s := sheet{
		name:    SheetChecks,
		columns: []string{"Category", "Check", "Status", "Score", "Weight", "Message", "Recommendation", "Source Pages"},
	}
	for _, c := range models.AllCategories {
		for _, check := range r.Categories[c].Checks {
			s.rows = append(s.rows, []any{
				c.DisplayName(), check.Name, string(check.Status), check.Score, check.Weight,
				check.Message, check.Recommendation, strings.Join(check.SourcePages, "\n"),
			})
		}
	}
	return s
}

func recommendationsSheet(r *models.AuditReport) sheet {
	s := sheet{
		name:    SheetRecommendations,
		columns: []string{"ID", "Priority", "Category", "Title", "Description", "Check", "Source Pages"},
	}
	for _, rec := range r.Recommendations {
		s.rows = append(s.rows, []any{
			rec.ID, string(rec.Priority), rec.CategoryName, rec.Title, rec.Description,
			rec.CheckID, strings.Join(rec.SourcePages, "\n"),
		})
	}
	return s
}

func pagesSheet(r *models.AuditReport) sheet {
	s := sheet{
		name:    SheetPages,
		columns: []string{"URL", "Type", "Title", "Categories"},
	}

	selected := make(map[string][]string)
	for c, urls := range r.AuditMapping {
		for _, u := range urls {
			selected[u] = append(selected[u], c.DisplayName())
		}
	}

	for _, pc := range r.PageClassifications {
		cats := selected[pc.URL]
		sort.Strings(cats)
		s.rows = append(s.rows, []any{pc.URL, string(pc.Type), pc.Title, strings.Join(cats, ", ")})
	}
	return s
}

// Package report renders the analysis markdown into the PDF and XLSX
// artifacts delivered to the recipient.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/news-alert/internal/common"
	"github.com/joseph-ayodele/news-alert/internal/extract"
)

const baseNamePrefix = "sea_news_report"

// Service writes report artifacts under a single output directory.
type Service struct {
	dir    string
	logger *slog.Logger
}

func NewService(dir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{dir: dir, logger: logger}
}

// Generate renders both artifacts from one report. The PDF and the
// spreadsheet share a timestamped base name so a delivery is easy to pair
// up on disk.
func (s *Service) Generate(markdown string, records []extract.Record) (pdfPath, xlsxPath string, err error) {
	start := time.Now()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", common.WrapError(err, "create reports dir")
	}

	base := fmt.Sprintf("%s_%s", baseNamePrefix, time.Now().Format("20060102_150405"))
	pdfPath = filepath.Join(s.dir, base+".pdf")
	xlsxPath = filepath.Join(s.dir, base+".xlsx")

	if err := s.generatePDF(markdown, pdfPath); err != nil {
		return "", "", err
	}
	if err := s.generateExcel(records, xlsxPath); err != nil {
		return "", "", err
	}

	s.logger.Info("report.generate.ok",
		"pdf", pdfPath,
		"xlsx", xlsxPath,
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pdfPath, xlsxPath, nil
}

func (s *Service) generatePDF(markdown, path string) error {
	w := newPDFWriter()
	if w.fontName == "Helvetica" {
		s.logger.Warn("report.pdf.no_unicode_font", "hint", "native-script text may not render")
	}
	w.renderMarkdown(markdown)
	if err := w.save(path); err != nil {
		return err
	}
	s.logger.Info("report.pdf.ok", "path", path)
	return nil
}

func (s *Service) generateExcel(records []extract.Record, path string) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("report.xlsx.close_error", "error", cerr)
		}
	}()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("report.xlsx.ok", "path", path, "rows", len(records))
	return nil
}

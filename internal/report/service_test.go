package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseph-ayodele/news-alert/internal/extract"
)

const sampleMarkdown = `# Southeast Asia Financial News Report

## Executive Summary
Two items covering regional payments and capital markets.

## News Details

### 1. Cross-border QR payments expand
- **Source**: [VNExpress](https://vnexpress.net/qr-expansion)
- **Date**: 2026-08-25
- **Summary**: The pilot now covers three provinces.
- **Key Analysis**: 1) Adoption is accelerating. 2) Fees remain a hurdle.

---
**Generated**: 2026-08-29 10:00:00
`

func TestGenerateWritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, nil)

	records := []extract.Record{
		{
			Title:   "Cross-border QR payments expand",
			Country: "Vietnam",
			URL:     "https://vnexpress.net/qr-expansion",
			Date:    "2026-08-25",
			Summary: "The pilot now covers three provinces.",
		},
	}

	pdfPath, xlsxPath, err := svc.Generate(sampleMarkdown, records)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, path := range []string{pdfPath, xlsxPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}

	pdfBase := filepath.Base(pdfPath)
	xlsxBase := filepath.Base(xlsxPath)
	if !strings.HasPrefix(pdfBase, "sea_news_report_") || !strings.HasSuffix(pdfBase, ".pdf") {
		t.Fatalf("unexpected pdf name %q", pdfBase)
	}
	if strings.TrimSuffix(pdfBase, ".pdf") != strings.TrimSuffix(xlsxBase, ".xlsx") {
		t.Fatalf("artifact base names differ: %q vs %q", pdfBase, xlsxBase)
	}
}

func TestGenerateCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	svc := NewService(dir, nil)

	if _, _, err := svc.Generate(sampleMarkdown, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestCleanInline(t *testing.T) {
	t.Parallel()

	got := cleanInline("**Source**: [VNExpress](https://vnexpress.net)")
	want := "Source: VNExpress (https://vnexpress.net)"
	if got != want {
		t.Fatalf("cleanInline = %q, want %q", got, want)
	}
}

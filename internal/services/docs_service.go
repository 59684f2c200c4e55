package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"sparetime/internal/domain/models"
	"sparetime/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the pending-review queue as a printable PDF sheet.
type DocsService struct {
	Queue     QueueStore
	RequestID string

	// Loader overrides queue loading in tests.
	Loader func(ctx context.Context, userID string) ([]models.QueueEntry, error)
}

// GenerateQueueSheet builds the PDF and a download filename.
func (s DocsService) GenerateQueueSheet(ctx context.Context, userID string) ([]byte, string, error) {
	entries, err := s.loadEntries(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_queue_sheet", fmt.Sprintf("entries=%d", len(entries)))

	pdfBytes, err := buildQueueSheetPDF(entries)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("review-queue-%s.pdf", time.Now().Format("2006-01-02"))
	return pdfBytes, filename, nil
}

func (s DocsService) loadEntries(ctx context.Context, userID string) ([]models.QueueEntry, error) {
	if s.Loader != nil {
		return s.Loader(ctx, userID)
	}
	return s.Queue.List(ctx, userID)
}

func buildQueueSheetPDF(entries []models.QueueEntry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pending Review Queue", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PENDING REVIEW QUEUE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	if len(entries) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.Cell(0, 8, "No videos waiting for review.")
	}

	for i, e := range entries {
		pdf.SetFont("Helvetica", "B", 12)
		title := e.Video.Title
		if strings.TrimSpace(title) == "" {
			title = e.Video.ID
		}
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s", i+1, title))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		lines := []string{
			fmt.Sprintf("Video ID : %s", e.Video.ID),
			fmt.Sprintf("Channel  : %s", orDash(e.Video.ChannelTitle)),
			fmt.Sprintf("Saved at : %s", e.EnqueuedAt.Format("2006-01-02 15:04")),
		}
		for _, line := range lines {
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
		if desc := strings.TrimSpace(e.Video.Description); desc != "" {
			pdf.MultiCell(0, 5, desc, "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

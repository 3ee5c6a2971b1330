package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const exportSheet = "Gift Ideas"

var exportHeader = []interface{}{
	"title", "description", "starter", "reaction", "price_range", "amazon_link", "image_url",
}

// ExportService renders stored results as spreadsheets.
type ExportService interface {
	ExportXLSX(ctx context.Context, id string) (bytes.Buffer, error)
}

type exportService struct {
	log             *logger.Logger
	results         ResultService
	placeholderBase string
}

// NewExportService exports results; image cells without a real image link to
// placeholders under placeholderBase.
func NewExportService(log *logger.Logger, results ResultService, placeholderBase string) ExportService {
	return &exportService{
		log:             log.With("service", "ExportService"),
		results:         results,
		placeholderBase: placeholderBase,
	}
}

func (s *exportService) ExportXLSX(ctx context.Context, id string) (bytes.Buffer, error) {
	var buf bytes.Buffer
	_, ideas, err := s.results.Get(ctx, id)
	if err != nil {
		return buf, err
	}
	if err := writeIdeasXLSX(&buf, ideas, s.placeholderBase); err != nil {
		return buf, fmt.Errorf("write xlsx: %w", err)
	}
	s.log.Debug("exported gift result", "result_id", id, "rows", len(ideas))
	return buf, nil
}

func writeIdeasXLSX(buf *bytes.Buffer, ideas []domain.GiftIdea, placeholderBase string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return err
	}
	for i, idea := range ideas {
		row := []interface{}{
			idea.Title,
			idea.Description,
			idea.Starter,
			idea.Reaction,
			idea.PriceRange,
			idea.ShopURL(),
			idea.CardImageURLFrom(placeholderBase),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(buf)
}

// ExportFilename is the attachment name for a result export.
func ExportFilename(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("gift-ideas-%s.xlsx", id)
}

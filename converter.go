package ocrtable

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ProcessingMetrics contains timing and statistics for a multi-page extraction
type ProcessingMetrics struct {
	TotalTime       time.Duration
	PageExtractions []PageMetrics
	Statistics      DocumentStatistics
}

// PageMetrics contains timing and counts for a single page
type PageMetrics struct {
	PageNumber int
	Duration   time.Duration
	Detections int
	Rows       int
}

// DocumentStatistics contains totals across all pages
type DocumentStatistics struct {
	TotalPages      int
	PagesWithTable  int
	TotalRows       int
	TotalDetections int
}

// ExtractPages reconstructs every page independently and concurrently.
// Documents are returned in page order. Cancelling ctx stops pages not yet started.
func (e *Extractor) ExtractPages(ctx context.Context, pages [][]Detection, labels []string) ([]Document, error) {
	docs, _, err := e.ExtractPagesWithMetrics(ctx, pages, labels)
	return docs, err
}

// ExtractPagesWithMetrics is ExtractPages that also returns timing and statistics.
func (e *Extractor) ExtractPagesWithMetrics(ctx context.Context, pages [][]Detection, labels []string) ([]Document, ProcessingMetrics, error) {
	startTime := time.Now()

	docs := make([]Document, len(pages))
	pageMetrics := make([]PageMetrics, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	if e.config.MaxConcurrency > 0 {
		g.SetLimit(e.config.MaxConcurrency)
	}

	for i, detections := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "page %d", i+1)
			}

			pageStart := time.Now()
			doc := e.ExtractDocument(detections, labels)
			docs[i] = doc
			pageMetrics[i] = PageMetrics{
				PageNumber: i + 1,
				Duration:   time.Since(pageStart),
				Detections: len(detections),
				Rows:       len(doc.Table),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, ProcessingMetrics{}, err
	}

	metrics := ProcessingMetrics{
		TotalTime:       time.Since(startTime),
		PageExtractions: pageMetrics,
		Statistics:      calculateDocumentStatistics(pageMetrics),
	}

	if e.config.EnableMetricsLogging {
		e.logProcessingMetrics(metrics)
	}

	return docs, metrics, nil
}

// calculateDocumentStatistics totals the per-page metrics
func calculateDocumentStatistics(pages []PageMetrics) DocumentStatistics {
	stats := DocumentStatistics{
		TotalPages: len(pages),
	}

	for _, pm := range pages {
		stats.TotalRows += pm.Rows
		stats.TotalDetections += pm.Detections
		if pm.Rows > 0 {
			stats.PagesWithTable++
		}
	}

	return stats
}

// logProcessingMetrics logs the processing metrics in a readable format
func (e *Extractor) logProcessingMetrics(metrics ProcessingMetrics) {
	log := e.config.Logger
	log.Info("┌─────────────────────────────────────────────┐")
	log.Info("│ Table Extraction Metrics                    │")
	log.Info("├─────────────────────────────────────────────┤")
	log.Infof("│ Total Time: %-31v │", metrics.TotalTime.Round(time.Microsecond))
	log.Infof("│   Pages:      %-29d │", metrics.Statistics.TotalPages)
	log.Infof("│   With table: %-29d │", metrics.Statistics.PagesWithTable)
	log.Infof("│   Rows:       %-29d │", metrics.Statistics.TotalRows)
	log.Infof("│   Detections: %-29d │", metrics.Statistics.TotalDetections)
	log.Info("├─────────────────────────────────────────────┤")

	for _, pm := range metrics.PageExtractions {
		log.Infof("│   Page %2d: %-30v │", pm.PageNumber, pm.Duration.Round(time.Microsecond))
	}

	log.Info("└─────────────────────────────────────────────┘")
}

package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/csvmap/pkg/logger"
	"github.com/BartekS5/csvmap/pkg/models"
)

// DefaultBatchTimeout bounds each Load call.
const DefaultBatchTimeout = 30 * time.Second

type Pipeline struct {
	Extractor    Extractor
	Loader       Loader
	BatchSize    int
	DryRun       bool
	BatchTimeout time.Duration
}

func NewPipeline(ext Extractor, loader Loader, batchSize int, dryRun bool) *Pipeline {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Pipeline{
		Extractor:    ext,
		Loader:       loader,
		BatchSize:    batchSize,
		DryRun:       dryRun,
		BatchTimeout: DefaultBatchTimeout,
	}
}

// Run maps the whole source, then loads the records in batches.
// It returns the number of records mapped.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	logger.Infof("Starting pipeline. Batch Size: %d, DryRun: %v", p.BatchSize, p.DryRun)
	startTime := time.Now()

	table, err := p.Extractor.Run()
	if err != nil {
		logger.Errorf("Mapping failed: %v", err)
		return 0, err
	}
	logger.Infof("Mapped %d records in %s", len(table), time.Since(startTime))

	totalLoaded := 0
	for start := 0; start < len(table); start += p.BatchSize {
		end := min(start+p.BatchSize, len(table))
		batch := table[start:end]

		if p.DryRun {
			logger.Infof("[DRY RUN] Would load %d records", len(batch))
			continue
		}

		if err := p.loadBatch(ctx, batch); err != nil {
			logger.Errorf("Loading failed at record %d: %v", start, err)
			return len(table), fmt.Errorf("load records %d-%d: %w", start, end-1, err)
		}

		totalLoaded += len(batch)
		rate := 0.0
		if d := time.Since(startTime); d.Seconds() > 0 {
			rate = float64(totalLoaded) / d.Seconds()
		}
		logger.Infof("Batch done. Total: %d. Rate: %.2f records/sec.", totalLoaded, rate)
	}

	logger.Info("Pipeline finished successfully.")
	return len(table), nil
}

func (p *Pipeline) loadBatch(ctx context.Context, batch []models.Record) error {
	timeout := p.BatchTimeout
	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Loader.Load(ctx, batch)
}

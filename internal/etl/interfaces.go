package etl

import (
	"context"

	"github.com/BartekS5/csvmap/pkg/models"
)

type Extractor interface {
	Run() (models.Table, error)
}

type Loader interface {
	Load(ctx context.Context, records []models.Record) error
}

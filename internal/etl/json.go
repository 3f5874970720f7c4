package etl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BartekS5/csvmap/pkg/models"
)

// JSONLoader writes one JSON object per record, keeping field order.
type JSONLoader struct {
	enc *json.Encoder
}

func NewJSONLoader(w io.Writer) *JSONLoader {
	return &JSONLoader{enc: json.NewEncoder(w)}
}

func (l *JSONLoader) Load(ctx context.Context, records []models.Record) error {
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

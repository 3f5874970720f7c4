package etl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BartekS5/csvmap/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type staticExtractor struct {
	table models.Table
	err   error
}

func (s staticExtractor) Run() (models.Table, error) {
	return s.table, s.err
}

type recordingLoader struct {
	batches [][]models.Record
	failAt  int
}

func (l *recordingLoader) Load(ctx context.Context, records []models.Record) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a batch deadline")
	}
	l.batches = append(l.batches, records)
	if l.failAt > 0 && len(l.batches) == l.failAt {
		return errors.New("sink unavailable")
	}
	return nil
}

func numberedTable(n int) models.Table {
	table := make(models.Table, n)
	for i := range table {
		table[i] = models.Record{{Name: "n", Value: i}}
	}
	return table
}

func TestPipelineBatches(t *testing.T) {
	loader := &recordingLoader{}
	p := NewPipeline(staticExtractor{table: numberedTable(5)}, loader, 2, false)

	n, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.Len(t, loader.batches, 3)
	assert.Len(t, loader.batches[0], 2)
	assert.Len(t, loader.batches[1], 2)
	assert.Len(t, loader.batches[2], 1)
}

func TestPipelineDryRun(t *testing.T) {
	loader := &recordingLoader{}
	p := NewPipeline(staticExtractor{table: numberedTable(3)}, loader, 0, true)

	n, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, loader.batches)
}

func TestPipelineErrors(t *testing.T) {
	_, err := NewPipeline(staticExtractor{err: ErrWrongColumnCount}, &recordingLoader{}, 10, false).Run(context.Background())
	assert.ErrorIs(t, err, ErrWrongColumnCount)

	loader := &recordingLoader{failAt: 2}
	_, err = NewPipeline(staticExtractor{table: numberedTable(5)}, loader, 2, false).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load records 2-3")
}

func TestJSONLoader(t *testing.T) {
	var buf bytes.Buffer
	table := models.Table{
		{{Name: "month", Value: "01"}, {Name: "temperature", Value: 0.2}},
		{{Name: "month", Value: "02"}, {Name: "temperature", Value: -1.5}},
	}

	require.NoError(t, NewJSONLoader(&buf).Load(context.Background(), table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		`{"month":"01","temperature":0.2}`,
		`{"month":"02","temperature":-1.5}`,
	}, lines)
}

func TestBuildInsert(t *testing.T) {
	rec := models.Record{{Name: "month", Value: "01"}, {Name: "odd]name", Value: 0.2}}

	query, args := buildInsert("dbo.temperatures", rec)
	assert.Equal(t, "INSERT INTO [dbo].[temperatures] ([month], [odd]]name]) VALUES (@p1, @p2)", query)
	assert.Equal(t, []interface{}{"01", 0.2}, args)
}

func TestMongoWrites(t *testing.T) {
	table := []models.Record{
		{{Name: "month", Value: "01"}, {Name: "year", Value: "2013"}},
		{{Name: "year", Value: "2013"}},
	}

	inserts := (&MongoLoader{}).buildWrites(table)
	require.Len(t, inserts, 2)
	insert, ok := inserts[0].(*mongo.InsertOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "month", Value: "01"}, {Key: "year", Value: "2013"}}, insert.Document)

	upserts := (&MongoLoader{KeyField: "month"}).buildWrites(table)
	require.Len(t, upserts, 1)
	upsert, ok := upserts[0].(*mongo.UpdateOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "month", Value: "01"}}, upsert.Filter)
	require.NotNil(t, upsert.Upsert)
	assert.True(t, *upsert.Upsert)
}

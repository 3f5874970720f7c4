package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/BartekS5/csvmap/internal/config"
	"github.com/BartekS5/csvmap/internal/etl"
	"github.com/BartekS5/csvmap/pkg/database"
	"github.com/BartekS5/csvmap/pkg/logger"
	"github.com/spf13/cobra"
)

// loadProviders reads the document once and applies the flag overrides.
// A document without a settings section relies on the flags alone.
func loadProviders(opts *SourceOptions) (config.SettingsProvider, config.MappingProvider, error) {
	doc, err := config.LoadDocument(opts.ConfigFile)
	if err != nil {
		return nil, nil, err
	}

	var settings config.SettingsProvider = config.NewSettings()
	if doc.Settings != nil {
		settings, err = config.DocumentSettingsFrom(opts.ConfigFile, doc)
		if err != nil {
			return nil, nil, err
		}
	}

	mapping, err := config.DocumentMappingFrom(opts.ConfigFile, doc, nil)
	if err != nil {
		return nil, nil, err
	}

	if opts.Folder != "" {
		settings.Set(config.SettingFolder, opts.Folder)
	}
	if opts.Filename != "" {
		settings.Set(config.SettingFilename, opts.Filename)
	}
	if opts.Separator != "" {
		settings.Set(config.SettingSeparator, opts.Separator)
	}
	if opts.Columns > 0 {
		settings.Set(config.SettingColumnsAllowed, opts.Columns)
	}

	return settings, mapping, nil
}

func runMap(cmd *cobra.Command, opts *MapOptions) error {
	cfg := config.LoadConfig()
	if err := cfg.RequireSink(opts.Sink); err != nil {
		return err
	}

	settings, mapping, err := loadProviders(&opts.SourceOptions)
	if err != nil {
		return err
	}

	mapperOpts := []etl.MapperOption{etl.WithLogger(logger.L())}
	if opts.Strict {
		mapperOpts = append(mapperOpts, etl.WithStrictValidation())
	}
	mapper := etl.NewMapper(settings, mapping, etl.NewLogReporter(logger.L()), mapperOpts...)

	loader, closeLoader, err := openLoader(cmd, cfg, opts)
	if err != nil {
		return err
	}
	defer closeLoader()

	pipeline := etl.NewPipeline(mapper, loader, opts.BatchSize, opts.DryRun)
	n, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Infof("Mapped %d records from %s into %s sink", n, opts.ConfigFile, opts.Sink)
	return nil
}

// openLoader connects the requested sink. The returned func releases it.
func openLoader(cmd *cobra.Command, cfg *config.Config, opts *MapOptions) (etl.Loader, func(), error) {
	ctx := cmd.Context()

	switch opts.Sink {
	case "json":
		return etl.NewJSONLoader(cmd.OutOrStdout()), func() {}, nil

	case "mongo":
		if opts.Collection == "" {
			return nil, nil, errors.New("--collection is required for the mongo sink")
		}
		client, err := database.ConnectMongo(ctx, cfg.MongoConnString)
		if err != nil {
			return nil, nil, err
		}
		loader := etl.NewMongoLoader(client, cfg.MongoDatabase, opts.Collection, opts.KeyField)
		return loader, func() { database.DisconnectMongo(client) }, nil

	case "sql":
		if opts.Table == "" {
			return nil, nil, errors.New("--table is required for the sql sink")
		}
		db, err := database.ConnectSQL(ctx, cfg.SQLConnString)
		if err != nil {
			return nil, nil, err
		}
		return etl.NewSQLLoader(db, opts.Table), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown sink %q", opts.Sink)
	}
}

func runValidate(cmd *cobra.Command, opts *SourceOptions) error {
	settings, mapping, err := loadProviders(opts)
	if err != nil {
		return err
	}

	collector := &etl.Collector{}
	table, err := etl.NewMapper(settings, mapping, collector, etl.WithLogger(logger.L())).Run()
	if err != nil {
		return err
	}

	printViolations(cmd.OutOrStdout(), collector)
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows, %d rejected values\n", len(table), collector.Len())
	if collector.Len() > 0 {
		return fmt.Errorf("%d values rejected", collector.Len())
	}
	return nil
}

func printViolations(w io.Writer, c *etl.Collector) {
	for _, v := range c.Violations {
		fmt.Fprintf(w, "row %d: %s rejected %q\n", v.Row, v.Field, v.Raw)
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

// SourceOptions select the document and override its settings.
type SourceOptions struct {
	ConfigFile string
	Folder     string
	Filename   string
	Separator  string
	Columns    int
}

type MapOptions struct {
	SourceOptions

	Sink       string
	Collection string
	Table      string
	KeyField   string
	BatchSize  int
	DryRun     bool
	Strict     bool
}

func addSourceFlags(cmd *cobra.Command, opts *SourceOptions) {
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to the mapping document (YAML or JSON)")
	cmd.Flags().StringVar(&opts.Folder, "folder", "", "Override the source folder")
	cmd.Flags().StringVar(&opts.Filename, "filename", "", "Override the source file name")
	cmd.Flags().StringVar(&opts.Separator, "separator", "", "Override the field separator")
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "Override the number of columns allowed per row")

	cmd.MarkFlagRequired("config")
}

func NewMapCmd() *cobra.Command {
	opts := &MapOptions{}

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map a delimited file and load the records into a sink",
		RunE: func(c *cobra.Command, args []string) error {
			return runMap(c, opts)
		},
	}

	addSourceFlags(cmd, &opts.SourceOptions)
	cmd.Flags().StringVarP(&opts.Sink, "sink", "s", "json", "Where to load records: json, mongo or sql")
	cmd.Flags().StringVar(&opts.Collection, "collection", "", "MongoDB collection (mongo sink)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "SQL Server table (sql sink)")
	cmd.Flags().StringVar(&opts.KeyField, "key-field", "", "Upsert on this field instead of inserting (mongo sink)")
	cmd.Flags().IntVarP(&opts.BatchSize, "batch-size", "b", 100, "Batch size")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Map the file without loading records")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Abort when a field test rejects a value")

	return cmd
}

func NewValidateCmd() *cobra.Command {
	opts := &SourceOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Map a delimited file and list every rejected value",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidate(c, opts)
		},
	}

	addSourceFlags(cmd, opts)
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bft-labs/phonedata/internal/cliconfig"
	"github.com/bft-labs/phonedata/pkg/phonedata"
)

// summary describes a loaded database.
type summary struct {
	Path        string `json:"path"`
	Version     string `json:"version"`
	Entries     int    `json:"entries"`
	RecordsSize int    `json:"records_bytes"`
	MinPrefix   uint32 `json:"min_prefix,omitempty"`
	MaxPrefix   uint32 `json:"max_prefix,omitempty"`
}

func summarize(path string, db *phonedata.Database) summary {
	s := summary{
		Path:        path,
		Version:     db.Version(),
		Entries:     db.Len(),
		RecordsSize: db.RecordsSize(),
	}
	if lo, hi, ok := db.PrefixRange(); ok {
		s.MinPrefix, s.MaxPrefix = lo, hi
	}
	return s
}

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the version and size of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase()
			if err != nil {
				return err
			}
			s := summarize(a.cfg.DataFile, db)

			if a.cfg.Format == cliconfig.FormatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "path:\t%s\n", s.Path)
			fmt.Fprintf(tw, "version:\t%s\n", s.Version)
			fmt.Fprintf(tw, "entries:\t%d\n", s.Entries)
			fmt.Fprintf(tw, "records:\t%d bytes\n", s.RecordsSize)
			if s.Entries > 0 {
				fmt.Fprintf(tw, "prefixes:\t%07d - %07d\n", s.MinPrefix, s.MaxPrefix)
			}
			return tw.Flush()
		},
	}
}

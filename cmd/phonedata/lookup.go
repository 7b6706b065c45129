package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/phonedata/internal/render"
)

func newLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup NUMBER...",
		Short: "Resolve one or more phone numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase()
			if err != nil {
				return err
			}

			p, err := render.New(cmd.OutOrStdout(), a.cfg.Format)
			if err != nil {
				return err
			}

			failed := 0
			for _, number := range args {
				info, err := db.Find(number)
				if err != nil {
					failed++
					a.log.Debug().Err(err).Str("number", number).Msg("lookup failed")
					if err := p.Failure(number, err); err != nil {
						return err
					}
					continue
				}
				if err := p.Result(number, info); err != nil {
					return err
				}
			}

			if err := p.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(args))
			}
			return nil
		},
	}
}

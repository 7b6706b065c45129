package main

import (
	"bufio"
	"context"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/phonedata/internal/reload"
	"github.com/bft-labs/phonedata/internal/render"
	"github.com/bft-labs/phonedata/pkg/log"
)

func newShellCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Resolve numbers read from stdin, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase()
			if err != nil {
				return err
			}
			holder := reload.NewHolder(db)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if a.cfg.Watch {
				w := reload.NewWatcher(a.cfg.DataFile, holder, a.load, a.cfg.Debounce, log.NewZerologAdapter(a.log))
				go func() {
					if err := w.Run(ctx); err != nil {
						a.log.Error().Err(err).Msg("data file watcher stopped")
					}
				}()
			}

			p, err := render.New(cmd.OutOrStdout(), a.cfg.Format)
			if err != nil {
				return err
			}

			lines := scanLines(ctx, cmd.InOrStdin())
			for {
				select {
				case <-ctx.Done():
					a.log.Info().Msg("received signal, stopping...")
					return p.Flush()
				case line, ok := <-lines:
					if !ok {
						return p.Flush()
					}
					number := strings.TrimSpace(line)
					if number == "" {
						continue
					}
					if err := resolve(p, holder, number); err != nil {
						return err
					}
					if err := p.Flush(); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&a.cfg.Watch, "watch", a.cfg.Watch, "reload the data file when it changes on disk")
	cmd.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period after a file change before reloading")
	return cmd
}

// scanLines delivers lines from r until EOF or ctx is done.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// resolve looks number up and prints the outcome. Only output errors are
// returned; lookup failures are printed.
func resolve(p *render.Printer, holder *reload.Holder, number string) error {
	info, err := holder.Find(number)
	if err != nil {
		return p.Failure(number, err)
	}
	return p.Result(number, info)
}

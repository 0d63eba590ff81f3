package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/internal/utils"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/klokku/schedulekeeper/pkg/storage"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	group      string
	clock      utils.Clock
}

// NewRootCommand builds the schedulekeeper command tree. clock is the time source for
// parsing and next-entry queries.
func NewRootCommand(clock utils.Clock) *cobra.Command {
	opts := &options{clock: clock}

	root := &cobra.Command{
		Use:           "schedulekeeper",
		Short:         "Keep per-group event schedules parsed from text listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML configuration file")

	root.AddCommand(
		newServeCommand(opts),
		newParseCommand(opts),
		newSaveCommand(opts),
		newShowCommand(opts),
		newNextCommand(opts),
	)
	return root
}

func (o *options) loadConfig() (config.Application, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Application{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// withService runs fn against a service backed by the configured storage backend.
func (o *options) withService(ctx context.Context, fn func(cfg config.Application, s *schedule.Service) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	backend, closer, err := storage.Select(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closer.Close()

	parser := schedule.NewParser(o.clock, cfg.Parser.UtcOffsetHours)
	return fn(cfg, schedule.NewService(backend, parser, o.clock, nil))
}

func addGroupFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.group, "group", "g", "", "group identifier")
	_ = cmd.MarkFlagRequired("group")
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}

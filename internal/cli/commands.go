package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/klokku/schedulekeeper/internal/app"
	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApplication(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run(ctx)
		},
	}
}

func newParseCommand(opts *options) *cobra.Command {
	var message bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a schedule listing and print the result without storing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			lines, err := readLines(cmd, args, message, cfg.Parser)
			if err != nil {
				return err
			}

			result, err := schedule.NewParser(opts.clock, cfg.Parser.UtcOffsetHours).Parse(lines)
			printSkipped(cmd.ErrOrStderr(), result.Skipped)
			if err != nil {
				if errors.Is(err, schedule.ErrNoValidEntries) {
					writeLine(cmd.OutOrStdout(), schedule.ReplyNoValidEntries)
				}
				return err
			}
			writeLine(cmd.OutOrStdout(), schedule.FormatSchedule(result.Schedule))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&message, "message", "m", false, "input is a whole message; only the block after the marker line is parsed")
	return cmd
}

func newSaveCommand(opts *options) *cobra.Command {
	var message bool
	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Parse a schedule listing and replace the group's stored schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), func(cfg config.Application, s *schedule.Service) error {
				lines, err := readLines(cmd, args, message, cfg.Parser)
				if err != nil {
					return err
				}
				result, err := s.SaveSchedule(cmd.Context(), opts.group, lines)
				printSkipped(cmd.ErrOrStderr(), result.Skipped)
				if err != nil {
					if errors.Is(err, schedule.ErrNoValidEntries) {
						writeLine(cmd.OutOrStdout(), schedule.ReplyNoValidEntries)
					}
					return err
				}
				writeLine(cmd.OutOrStdout(), schedule.FormatSchedule(result.Schedule))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&message, "message", "m", false, "input is a whole message; only the block after the marker line is parsed")
	addGroupFlag(cmd, opts)
	return cmd
}

func newShowCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the group's stored schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), func(_ config.Application, s *schedule.Service) error {
				stored, err := s.GetSchedule(cmd.Context(), opts.group)
				if err != nil {
					if errors.Is(err, schedule.ErrNoScheduleSaved) {
						writeLine(cmd.OutOrStdout(), schedule.ReplyNoScheduleSaved)
						return nil
					}
					return err
				}
				writeLine(cmd.OutOrStdout(), schedule.FormatSchedule(stored))
				return nil
			})
		},
	}
	addGroupFlag(cmd, opts)
	return cmd
}

func newNextCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the group's next upcoming entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), func(_ config.Application, s *schedule.Service) error {
				entry, err := s.NextEntry(cmd.Context(), opts.group)
				switch {
				case errors.Is(err, schedule.ErrNoScheduleSaved):
					writeLine(cmd.OutOrStdout(), schedule.ReplyNoScheduleSaved)
				case errors.Is(err, schedule.ErrNothingUpcoming):
					writeLine(cmd.OutOrStdout(), schedule.ReplyNothingUpcoming)
				case err != nil:
					return err
				default:
					writeLine(cmd.OutOrStdout(), schedule.FormatEntry(entry))
				}
				return nil
			})
		},
	}
	addGroupFlag(cmd, opts)
	return cmd
}

// readLines reads the listing from the file argument or stdin.
func readLines(cmd *cobra.Command, args []string, message bool, cfg config.Parser) ([]string, error) {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	text := string(data)

	if message {
		return schedule.ExtractLines(text, cfg.Marker), nil
	}

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func printSkipped(w io.Writer, skipped []schedule.SkippedLine) {
	for _, s := range skipped {
		_, _ = fmt.Fprintf(w, "skipped %q: %s\n", s.Line, s.Reason)
	}
}

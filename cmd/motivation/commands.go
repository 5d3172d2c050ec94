package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/motivation-app/motivation/pkg/settings"
)

func newAgeCmd(e *env) *cobra.Command {
	var at, level string

	cmd := &cobra.Command{
		Use:   "age",
		Short: "Print your age once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				b, err := settings.ParseBirthday(at, e.loc)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now, _ = b.Get()
			}

			p := e.settings.PrecisionLevel()
			if level != "" {
				parsed, err := settings.ParsePrecisionLevel(level)
				if err != nil {
					return fmt.Errorf("--level: %w", err)
				}
				p = parsed
			}

			fmt.Fprintln(cmd.OutOrStdout(), e.formatter.Format(e.settings.Birthday(), now, p))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "compute the age at this instant instead of now")
	cmd.Flags().StringVar(&level, "level", "", "precision level to print with (default: the stored level)")
	return cmd
}

func newBirthdayCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birthday",
		Short: "Show or change the stored birthday",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <RFC3339 | YYYY-MM-DD | YYYY-MM-DDTHH:MM | @unix>",
			Short: "Store your birthday",
			Long: "Store your birthday. Dates and times without a zone are read in\n" +
				"the configured time zone.",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := settings.ParseBirthday(args[0], e.loc)
				if err != nil {
					return err
				}
				if err := e.settings.SetBirthday(b); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "birthday set to %s\n", formatBirthday(b, e.loc))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored birthday",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.settings.SetBirthday(settings.Unset()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "birthday cleared")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored birthday",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), formatBirthday(e.settings.Birthday(), e.loc))
				return nil
			},
		},
	)
	return cmd
}

func newLevelCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Show or change the precision level",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <light | moderate | terrifying | 0 | 1 | 2>",
			Short: "Store the precision level",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := settings.ParsePrecisionLevel(args[0])
				if err != nil {
					return err
				}
				if err := e.settings.SetPrecisionLevel(p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "precision level set to %s\n", describeLevel(p))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the precision level",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), describeLevel(e.settings.PrecisionLevel()))
				return nil
			},
		},
	)
	return cmd
}

func formatBirthday(b settings.Birthday, loc *time.Location) string {
	t, ok := b.Get()
	if !ok {
		return b.String()
	}
	return t.In(loc).Format(time.RFC3339Nano)
}

func describeLevel(p settings.PrecisionLevel) string {
	return fmt.Sprintf("%s (%d decimal places)", p, p.DecimalPlaces())
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/wortschatz/internal/health"
	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/settings"
	"github.com/jeanpaul/wortschatz/internal/tui"
)

func (c *cli) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration and the connection to Gemini",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.Config
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "data dir\t%s\n", cfg.DataDir)
			fmt.Fprintf(w, "storage\t%s\n", cfg.Storage.Backend)
			fmt.Fprintf(w, "log file\t%s\n", cfg.LogFile())
			fmt.Fprintf(w, "model\t%s\n", cfg.Provider.Model)
			fmt.Fprintf(w, "api key\t%s\n", settings.Mask(a.Settings.APIKey()))
			fmt.Fprintf(w, "locale\t%s (%s)\n", a.Settings.Locale(), a.Settings.Direction())
			fmt.Fprintf(w, "cached responses\t%d\n", a.Cache.Len())
			fmt.Fprintf(w, "saved conversations\t%d\n", a.Ledger.Len())
			fmt.Fprintf(w, "speech\t%s (%s)\n", cfg.Speech.Command, a.Settings.Audio())
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "\n%s Checking %s...\n", tui.SpinnerStyle.Render("●"), cfg.Provider.BaseURL)
			st := health.Checker{}.Check(cmd.Context(), cfg.Provider.BaseURL, a.Settings.APIKey(), cfg.Provider.Model)
			if !st.Reachable {
				fmt.Fprintln(c.out, tui.ErrorStyle.Render("✗ "+st.Error))
				return fmt.Errorf("gemini is not reachable")
			}
			fmt.Fprintf(c.out, "✓ reachable in %s, %d models\n", st.Latency.Round(time.Millisecond), len(st.Models))
			if !st.ModelFound {
				fmt.Fprintln(c.out, tui.NoticeStyle.Render(fmt.Sprintf("! model %q is not listed for this key", cfg.Provider.Model)))
			}
			return nil
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var austrian, all bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved conversations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			keep := ledger.ByVariant(austrian)
			if all {
				keep = nil
			}
			recs := a.Ledger.List(keep)
			if len(recs) == 0 {
				fmt.Fprintln(c.out, a.Strings().ConvNoHistory)
				return nil
			}
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			for _, r := range recs {
				variant := ""
				if r.Austrian {
					variant = "AT"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					time.UnixMilli(r.Timestamp).Format("2006-01-02 15:04"), r.Level, r.Length, variant, r.Topic)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&austrian, "austrian", false, "list Austrian German conversations")
	cmd.Flags().BoolVar(&all, "all", false, "list both variants")
	return cmd
}

func (c *cli) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache size",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			st := a.Cache.Stats()
			limit := "unbounded"
			if n := a.Config.Cache.MaxEntries; n > 0 {
				limit = fmt.Sprint(n)
			}
			fmt.Fprintf(c.out, "entries: %d (limit: %s)\n", st.Entries, limit)
			return nil
		},
	})
	return cmd
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change persisted settings",
		Long:  "Settings: " + strings.Join(settings.Names, ", "),
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get [name]",
			Short: "Print one setting, or all of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := c.open()
				if err != nil {
					return err
				}
				defer a.Close()

				names := settings.Names
				if len(args) == 1 {
					names = args
				}
				for _, n := range names {
					v, err := a.Settings.Get(n)
					if err != nil {
						return err
					}
					if len(args) == 1 {
						fmt.Fprintln(c.out, v)
					} else {
						fmt.Fprintf(c.out, "%s=%s\n", n, v)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <name> <value>",
			Short: "Change a setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := c.open()
				if err != nil {
					return err
				}
				defer a.Close()
				return a.Settings.Set(args[0], args[1])
			},
		},
	)
	return cmd
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.out, "wortschatz %s (%s)\n", version, commit)
		},
	}
}


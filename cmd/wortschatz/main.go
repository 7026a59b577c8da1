// Command wortschatz is a terminal German tutor backed by the Gemini API.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/jeanpaul/wortschatz/internal/app"
	"github.com/jeanpaul/wortschatz/internal/config"
	"github.com/jeanpaul/wortschatz/internal/logging"
	"github.com/jeanpaul/wortschatz/internal/tui"
)

// Set by the linker.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// cli holds the flags shared by every command.
type cli struct {
	cfgFile string
	verbose bool
	out     io.Writer
	// opts are passed to app.New; tests use them to swap collaborators.
	opts []app.Option
}

func newRootCmd(out io.Writer, opts ...app.Option) *cobra.Command {
	c := &cli{out: out, opts: opts}
	root := &cobra.Command{
		Use:   "wortschatz",
		Short: "Learn German vocabulary and grammar in the terminal",
		Long: `wortschatz generates German lessons with Gemini: noun articles and cases,
verb conjugations and meanings, grammar topics, function words and
level-appropriate conversations. Every answer is cached on disk.

Run without arguments to start the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./config.yaml or ~/.config/wortschatz/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	root.SetOut(out)

	root.AddCommand(
		c.doctorCmd(),
		c.historyCmd(),
		c.cacheCmd(),
		c.settingsCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) loadConfig() (*config.Config, error) {
	if c.cfgFile != "" {
		return config.LoadFile(c.cfgFile)
	}
	return config.Load()
}

// open loads the configuration, the logger and all persisted state.
func (c *cli) open() (*app.Context, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogFile(), cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if c.verbose {
		log.Level.SetLevel(zapcore.DebugLevel)
	}
	return app.New(cfg, log.Logger, c.opts...)
}

func (c *cli) runTUI() error {
	a, err := c.open()
	if err != nil {
		return err
	}
	defer a.Close()

	var opts []tea.ProgramOption
	if isTerminal() {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithMouseCellMotion())

	if _, err := tea.NewProgram(tui.New(a), opts...).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Command libsearch-tui is an interactive terminal client for a
// prebuilt library index, using the same query syntax as the MCP
// server.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/seforimlab/libsearch/index"
	"github.com/seforimlab/libsearch/search"
	"github.com/seforimlab/libsearch/tui"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "libsearch-tui",
		Usage: "Interactive full-text search over a prebuilt library index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "index",
				Aliases:  []string{"i"},
				Usage:    "Path to the prebuilt index directory",
				EnvVars:  []string{"LIBSEARCH_INDEX"},
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum results per query",
				Value: 10,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	handle, err := index.Open(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() { _ = handle.Close() }()

	agent, err := search.NewAgent(handle, search.Config{})
	if err != nil {
		return err
	}
	defer agent.Close()

	summary := handle.Path()
	if count, err := handle.DocCount(); err == nil {
		summary = fmt.Sprintf("%s (%d documents)", handle.Path(), count)
	}

	program := tea.NewProgram(
		tui.New(agent, summary, c.Int("limit")),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

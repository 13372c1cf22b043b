// Package cli implements the interactive terminal client: a small REPL over
// the typed API client, with prompts for each operation.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"impulselog/internal/client/client"
	"impulselog/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *client.APIClient
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewAPIClient(c.ServerBaseURL, c.RequestTimeout)

	return &App{
		config: c,
		api:    api,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

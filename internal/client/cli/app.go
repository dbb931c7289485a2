package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/arabica/internal/client/client"
	"github.com/dmitrijs2005/arabica/internal/client/config"
)

var errNoToken = errors.New("no session token: pass -token or set ARABICA_TOKEN")

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

type command func(a *App, ctx context.Context) error

var commands = map[string]command{
	"register": (*App).register,
	"login":    (*App).login,
	"check":    (*App).check,
	"logout":   (*App).logout,
	"sessions": (*App).sessions,
	"ping":     (*App).ping,
}

// Run executes the first known command found in args and returns the
// process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	defer a.client.Close()

	name, cmd := lookup(args)
	if cmd == nil {
		a.usage()
		return 2
	}

	if err := cmd(a, ctx); err != nil {
		fmt.Fprintf(a.out, "%s failed: %v\n", name, err)
		return 1
	}
	return 0
}

func lookup(args []string) (string, command) {
	for _, arg := range args {
		if cmd, ok := commands[arg]; ok {
			return arg, cmd
		}
	}
	return "", nil
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: arabica-cli [-a host:port] [-r seconds] [-token TOKEN] <command>")
	fmt.Fprintln(a.out, "Available commands: register, login, check, logout, sessions, ping")
}

func (a *App) token() (string, error) {
	if a.config.Token == "" {
		return "", errNoToken
	}
	return a.config.Token, nil
}

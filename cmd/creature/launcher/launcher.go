package launcher

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/creature-flatdata/flags"
	"github.com/rony4d/creature-flatdata/store"
)

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp()
	app.Commands = []cli.Command{
		convertCommand(),
		inspectCommand(),
		catalogCommand(),
	}
	return app
}

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

// commandFlags is the flag set every command accepts on top of its own.
func commandFlags(own ...[]cli.Flag) []cli.Flag {
	all := append(flags.CommonFlags(), flags.StoreFlags()...)
	for _, f := range own {
		all = append(all, f...)
	}
	return all
}

// setup resolves the configuration for a command invocation and builds its logger. Logs go to
// the app's error writer so command output on the regular writer stays clean.
func setup(ctx *cli.Context) (Config, *logrus.Logger, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return Config{}, nil, err
	}
	out := ctx.App.ErrWriter
	if out == nil {
		out = os.Stderr
	}
	log, err := newLogger(cfg.Logging, out)
	if err != nil {
		return Config{}, nil, fmt.Errorf("logging: %w", err)
	}
	return cfg, log, nil
}

func openCatalog(cfg Config, log logrus.FieldLogger) (*store.Catalog, error) {
	return store.Open(store.Options{
		Path:         cfg.Store.Dir,
		CacheSize:    int64(cfg.Store.CacheMB) << 20,
		MaxOpenFiles: cfg.Store.Handles,
	}, log)
}

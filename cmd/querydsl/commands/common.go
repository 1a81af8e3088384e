package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/guenzelsen/querydsl/definition"
	"github.com/guenzelsen/querydsl/internal/config"
	"github.com/guenzelsen/querydsl/internal/logger"
	"github.com/urfave/cli/v3"
)

// appContext holds what every command needs before it runs.
type appContext struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
}

func newAppContext(cmd *cli.Command) (*appContext, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	root := cmd.Root()
	errOut := root.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	out := root.Writer
	if out == nil {
		out = os.Stdout
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, errOut)
	return &appContext{Config: cfg, Logger: log, Out: out}, nil
}

// loadDefinition reads the --file definition.
func (a *appContext) loadDefinition(cmd *cli.Command) (*definition.Definition, error) {
	path := cmd.String("file")
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug("loaded definition", "file", path, "kind", def.Query.Kind)
	return def, nil
}

// writeJSON prints data followed by a newline, indented when pretty is set.
func (a *appContext) writeJSON(data []byte, pretty bool) error {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("failed to indent output: %w", err)
		}
		data = buf.Bytes()
	}
	if _, err := fmt.Fprintf(a.Out, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

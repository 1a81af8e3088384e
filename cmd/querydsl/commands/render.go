package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guenzelsen/querydsl"
	"github.com/guenzelsen/querydsl/bleve"
	"github.com/guenzelsen/querydsl/definition"
	"github.com/guenzelsen/querydsl/internal/config"
	"github.com/guenzelsen/querydsl/opensearch"
	"github.com/urfave/cli/v3"
)

// RenderAction renders a definition file for the configured dialect.
func RenderAction(ctx context.Context, cmd *cli.Command) error {
	app, err := newAppContext(cmd)
	if err != nil {
		return err
	}

	dialect := app.Config.Dialect
	if d := cmd.String("dialect"); d != "" {
		dialect = strings.ToLower(d)
	}
	if err := config.ValidateDialect(dialect); err != nil {
		return err
	}

	def, err := app.loadDefinition(cmd)
	if err != nil {
		return err
	}
	if n := cmd.Int("size"); n >= 0 {
		def.Size = &n
	}
	if n := cmd.Int("from"); n >= 0 {
		def.From = &n
	}

	var out []byte
	switch dialect {
	case config.DialectBleve:
		out, err = renderBleve(app, def)
	default:
		out, err = renderOpenSearch(def)
	}
	if err != nil {
		return err
	}

	app.Logger.Info("rendered query", "dialect", dialect, "kind", def.Query.Kind)
	return app.writeJSON(out, cmd.Bool("pretty") || app.Config.Pretty)
}

// renderOpenSearch prints a full search request when the definition
// carries request settings, and the bare query otherwise.
func renderOpenSearch(def *definition.Definition) ([]byte, error) {
	var opts []opensearch.RequestOption
	if def.Size != nil {
		opts = append(opts, opensearch.WithSize(*def.Size))
	}
	if def.From != nil {
		opts = append(opts, opensearch.WithFrom(*def.From))
	}
	if len(def.Includes) > 0 {
		opts = append(opts, opensearch.WithSourceIncludes(def.Includes...))
	}
	if len(def.Excludes) > 0 {
		opts = append(opts, opensearch.WithSourceExcludes(def.Excludes...))
	}

	if len(opts) == 0 {
		result, err := querydsl.Render(def.Query, opensearch.New())
		if err != nil {
			return nil, err
		}
		return []byte(result.JSON), nil
	}

	req, err := opensearch.SearchRequest(def.Query, opts...)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}
	return data, nil
}

func renderBleve(app *appContext, def *definition.Definition) ([]byte, error) {
	if def.Size != nil || def.From != nil || len(def.Includes) > 0 || len(def.Excludes) > 0 {
		app.Logger.Warn("bleve output holds the query only; request settings are ignored")
	}
	result, err := querydsl.Render(def.Query, bleve.New())
	if err != nil {
		return nil, err
	}
	return []byte(result.JSON), nil
}

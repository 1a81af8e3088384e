package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ValidateAction loads a definition file and reports whether it is valid.
func ValidateAction(ctx context.Context, cmd *cli.Command) error {
	app, err := newAppContext(cmd)
	if err != nil {
		return err
	}

	def, err := app.loadDefinition(cmd)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(app.Out, "%s: valid %s query\n", cmd.String("file"), def.Query.Kind)
	return err
}

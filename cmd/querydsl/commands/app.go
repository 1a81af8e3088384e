package commands

import "github.com/urfave/cli/v3"

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to a dotenv file",
		Value: ".env",
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "query definition (YAML or JSON)",
		Required: true,
	}
}

// NewApp builds the querydsl command tree.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "querydsl",
		Usage: "build, validate and render search query definitions",
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render a query definition for a search engine",
				Flags: []cli.Flag{
					envFlag(),
					fileFlag(),
					&cli.StringFlag{
						Name:  "dialect",
						Usage: "target dialect: opensearch or bleve (default from QUERYDSL_DIALECT)",
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "number of hits to request",
						Value: -1,
					},
					&cli.IntFlag{
						Name:  "from",
						Usage: "offset of the first hit",
						Value: -1,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "indent the rendered JSON",
					},
				},
				Action: RenderAction,
			},
			{
				Name:  "validate",
				Usage: "check that a query definition is well formed",
				Flags: []cli.Flag{
					envFlag(),
					fileFlag(),
				},
				Action: ValidateAction,
			},
		},
	}
}

package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "pngfun"
	s.app.Usage = "PNG.FUN photo challenge backend"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "optional dotenv file loaded before the environment",
			Value: ".env",
		},
	}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used to start the http server serving every /api endpoint.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to move challenges through their lifecycle and settle votes.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "auto",
					Usage: "create the schema from the entities instead of the sql files",
				},
			},
			Subcommands: []*cli.Command{
				{
					Action: s.startRollback,
					Name:   "rollback",
					Usage:  "Revert the last applied migration",
				},
			},
		},
	}
}

package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Name = "atoz"
	s.app.Usage = "Social activity backend"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.toml",
			Usage:   "Path of the TOML configuration file",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Action = cli.ShowAppHelp
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serve the http api, the realtime websocket and the metrics.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database to the latest version",
			Category:    "Database",
			Description: `Run the versioned sql migrations on mysql, or create the tables on sqlite.`,
		},
		{
			Action:   s.startSeed,
			Name:     "seed",
			Usage:    "Insert sample activities into an empty database",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Value: "admin", Usage: "Username of the host"},
				&cli.StringFlag{Name: "email", Value: "admin@atoz.local", Usage: "Email of the host"},
				&cli.StringFlag{Name: "password", Value: "Pa$$w0rd", Usage: "Password of the host"},
			},
		},
	}
}

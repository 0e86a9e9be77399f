package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "m3ugroups",
		Usage: "Pick channel groups out of an M3U playlist and export them as a new playlist.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional config file path (YAML); else use environment variables",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: runServe,
			},
			{
				Name:  "groups",
				Usage: "List the groups of a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "Playlist file path or http(s) URL", Required: true},
				},
				Action: runGroups,
			},
			{
				Name:  "export",
				Usage: "Write the channels of the chosen groups to playlist_YYYY-MM-DD.m3u",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "Playlist file path or http(s) URL", Required: true},
					&cli.StringSliceFlag{Name: "group", Aliases: []string{"g"}, Usage: "Group name to export (repeatable)"},
					&cli.BoolFlag{Name: "all", Usage: "Export every group"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "Output directory, or - for stdout"},
				},
				Action: runExport,
			},
		},
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

const description = `planner expands recurring events into dated instances and
prints the calendar grids the planner views are built from.

Event files use the planner JSON form:

  {"title":"standup","date":"2024-01-31","startTime":"09:00","endTime":"09:15",
   "repeat":{"type":"monthly","interval":1,"endDate":"2024-12-31"}}`

func newApp(fs afero.Fs, out, errOut io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "planner"
	app.HelpName = "planner"
	app.Usage = "expand recurring events and browse calendar weeks"
	app.UsageText = "planner <command> [arguments...]"
	app.Description = description
	app.Writer = out
	app.ErrWriter = errOut

	cmds := &commands{fs: fs, out: out, errOut: errOut}
	app.Commands = []cli.Command{
		{
			Name:    "expand",
			Aliases: []string{"e"},
			Usage:   "expand a repeating event into its instances",
			Action:  cmds.expand,
			Flags:   expandFlags,
		},
		{
			Name:    "save",
			Aliases: []string{"s"},
			Usage:   "run an event through the save workflow and print the stored events",
			Action:  cmds.save,
			Flags:   saveFlags,
		},
		{
			Name:    "next",
			Aliases: []string{"n"},
			Usage:   "compute the occurrence a number of steps after a date",
			Action:  cmds.next,
			Flags:   nextFlags,
		},
		{
			Name:    "month",
			Aliases: []string{"m"},
			Usage:   "print the Sunday-first week grid of a month",
			Action:  cmds.month,
			Flags:   dateFlags,
		},
		{
			Name:    "week",
			Aliases: []string{"w"},
			Usage:   "print the week label and dates around a date",
			Action:  cmds.week,
			Flags:   dateFlags,
		},
	}
	return app
}

func main() {
	if err := newApp(afero.NewOsFs(), os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

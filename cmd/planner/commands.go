package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/config"
	"github.com/nogy21/libplanner/event"
	"github.com/nogy21/libplanner/planner"
	"github.com/nogy21/libplanner/recurrence"
	"github.com/nogy21/libplanner/storage/memory"
)

const (
	formatJSON   = "json"
	formatICS    = "ics"
	formatSeries = "series"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML config file, created with defaults when missing",
	}
	eventFlag = cli.StringFlag{
		Name:  "event, f",
		Usage: "JSON file holding one event",
	}
	ceilingFlag = cli.StringFlag{
		Name:  "ceiling",
		Usage: "expand up to `DATE` instead of the configured ceiling",
	}

	expandFlags = []cli.Flag{
		eventFlag,
		ceilingFlag,
		cli.StringFlag{
			Name:  "format",
			Value: formatJSON,
			Usage: "output format: json, ics or series",
		},
		configFlag,
	}
	saveFlags = []cli.Flag{eventFlag, configFlag}
	nextFlags = []cli.Flag{
		cli.StringFlag{Name: "date, d", Usage: "base `DATE` (YYYY-MM-DD)"},
		cli.StringFlag{Name: "type, t", Value: string(calendar.FrequencyDaily), Usage: "daily, weekly, monthly or yearly"},
		cli.IntFlag{Name: "step, s", Value: 1, Usage: "number of steps to advance"},
	}
	dateFlags = []cli.Flag{
		cli.StringFlag{Name: "date, d", Usage: "`DATE` (YYYY-MM-DD) inside the period"},
	}
)

type commands struct {
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
}

// setup loads the configuration named by --config, or the defaults when the
// flag is absent, and builds a logger at its level.
func (c *commands) setup(ctx *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(c.fs, path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	logger := slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: cfg.Level()}))
	return cfg, logger, nil
}

func (c *commands) readEvent(ctx *cli.Context) (event.Event, error) {
	path := ctx.String("event")
	if path == "" {
		return event.Event{}, errors.New("--event is required")
	}
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to read event: %w", err)
	}
	var ev event.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return event.Event{}, fmt.Errorf("failed to parse event %s: %w", path, err)
	}
	return ev, nil
}

func (c *commands) expand(ctx *cli.Context) error {
	cfg, logger, err := c.setup(ctx)
	if err != nil {
		return err
	}
	ev, err := c.readEvent(ctx)
	if err != nil {
		return err
	}

	engine := recurrence.NewEngineWithConfig(cfg.EngineConfig(), recurrence.WithLogger(logger))
	ceiling := engine.Ceiling()
	if s := ctx.String("ceiling"); s != "" {
		if ceiling, err = calendar.ParseDate(s); err != nil {
			return err
		}
	}

	switch format := strings.ToLower(ctx.String("format")); format {
	case formatSeries:
		return engine.EncodeSeries(c.out, ev, ceiling)
	case formatJSON, formatICS:
		instances, err := engine.ExpandUntil(ev, ceiling)
		if err != nil {
			return err
		}
		if format == formatICS {
			return recurrence.EncodeInstances(c.out, instances)
		}
		return c.writeJSON(instances)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (c *commands) save(ctx *cli.Context) error {
	cfg, logger, err := c.setup(ctx)
	if err != nil {
		return err
	}
	ev, err := c.readEvent(ctx)
	if err != nil {
		return err
	}

	store := memory.New(memory.WithLogger(logger))
	engine := recurrence.NewEngineWithConfig(cfg.EngineConfig(), recurrence.WithLogger(logger))
	svc := planner.NewService(store, engine, planner.WithLogger(logger))

	stored, err := svc.Save(context.Background(), ev)
	if err != nil {
		return err
	}
	return c.writeJSON(stored)
}

func (c *commands) next(ctx *cli.Context) error {
	base, err := calendar.ParseDate(ctx.String("date"))
	if err != nil {
		return err
	}
	freq, err := calendar.ParseFrequency(ctx.String("type"))
	if err != nil {
		return err
	}
	next, err := calendar.NextOccurrence(base, freq, ctx.Int("step"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, next)
	return nil
}

func (c *commands) month(ctx *cli.Context) error {
	d, err := calendar.ParseDate(ctx.String("date"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, calendar.FormatMonth(d))
	fmt.Fprintln(c.out, "Su Mo Tu We Th Fr Sa")
	for _, week := range calendar.WeeksAtMonth(d.Year, d.Month) {
		cells := make([]string, len(week))
		for i, day := range week {
			if day == 0 {
				cells[i] = "  "
				continue
			}
			cells[i] = fmt.Sprintf("%2d", day)
		}
		fmt.Fprintln(c.out, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return nil
}

func (c *commands) week(ctx *cli.Context) error {
	d, err := calendar.ParseDate(ctx.String("date"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, calendar.FormatWeek(d))
	for _, day := range calendar.WeekDates(d) {
		fmt.Fprintf(c.out, "%s %s\n", day.Weekday().String()[:3], day)
	}
	return nil
}

func (c *commands) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

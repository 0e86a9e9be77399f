package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/voyagen/m3ugroups/internal/cache"
	"github.com/voyagen/m3ugroups/internal/config"
	"github.com/voyagen/m3ugroups/internal/fetcher"
	"github.com/voyagen/m3ugroups/internal/m3u"
	"github.com/voyagen/m3ugroups/internal/metrics"
	"github.com/voyagen/m3ugroups/internal/selection"
	"github.com/voyagen/m3ugroups/internal/server"
	"github.com/voyagen/m3ugroups/internal/service"
	"github.com/voyagen/m3ugroups/internal/store"
)

var errUnknownGroups = errors.New("unknown groups")

func loadConfig(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(cfg.Level())
	return log
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sessions store.Store
	if cfg.RedisURL != "" {
		rds, err := cache.New(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rds.Close()

		if err := rds.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		sessions = store.NewRedis(rds, cfg.SessionTTL)
		log.Info("redis connected (sessions stored in redis)")
	} else {
		mem := store.NewMemory(cfg.SessionTTL)
		sweeper, err := startSweeper(mem, cfg.SweepSchedule, log)
		if err != nil {
			return err
		}
		defer sweeper.Stop()
		sessions = mem
		log.Info("redis disabled (REDIS_URL not set), sessions kept in memory")
	}

	svc := service.New(sessions, m3u.Parser{Locale: cfg.Tag()}, fetchOptions(cfg), log)
	return server.New(svc, cfg, log).ListenAndServe(ctx)
}

// startSweeper drops expired in-memory sessions on schedule. Redis expires its own keys.
func startSweeper(mem *store.Memory, schedule string, log logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := mem.Sweep(); n > 0 {
			log.WithField("sessions", n).Debug("expired sessions swept")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sweep schedule: %w", err)
	}
	c.Start()
	return c, nil
}

func fetchOptions(cfg *config.Config) fetcher.Options {
	return fetcher.Options{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout}
}

// readPlaylist loads and parses --in, reporting the outcome on stderr.
func readPlaylist(c *cli.Context, cfg *config.Config) (m3u.Result, error) {
	in := c.String("in")
	text, err := fetcher.Load(c.Context, in, fetchOptions(cfg))
	if err != nil {
		metrics.PlaylistLoadFailuresTotal.WithLabelValues(loadSource(in)).Inc()
		return m3u.Result{}, err
	}
	res := m3u.Parser{Locale: cfg.Tag()}.Parse(m3u.SplitLines(text))
	metrics.PlaylistParsesTotal.WithLabelValues(res.Status.String()).Inc()
	fmt.Fprintln(c.App.ErrWriter, res.Message())
	return res, nil
}

func loadSource(location string) string {
	if fetcher.IsURL(location) {
		return "url"
	}
	return "file"
}

func runGroups(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	res, err := readPlaylist(c, cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGROUP\tCHANNELS")
	for _, g := range res.Groups {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", g.ID, g.Name, g.Count)
	}
	return tw.Flush()
}

func runExport(c *cli.Context) error {
	names := c.StringSlice("group")
	if c.Bool("all") == (len(names) > 0) {
		return errors.New("pass either --all or at least one --group")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	res, err := readPlaylist(c, cfg)
	if err != nil {
		return err
	}

	set := selection.All(res.Groups)
	if !c.Bool("all") {
		var missing []string
		set, missing = selection.ByNames(res.Groups, names)
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s", errUnknownGroups, strings.Join(missing, ", "))
		}
	}

	exp, err := service.BuildExport(res.Entries, res.Groups, set, time.Now())
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "-" {
		_, err := fmt.Fprint(c.App.Writer, exp.Content)
		return err
	}
	path := filepath.Join(out, exp.Filename)
	if err := os.WriteFile(path, []byte(exp.Content), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(c.App.ErrWriter, "Exported %d channels to %s\n", exp.Channels, path)
	return nil
}

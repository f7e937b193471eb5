package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/analytics"
	"github.com/yuhaochen/lexipost/internal/app"
	"github.com/yuhaochen/lexipost/internal/auth"
	"github.com/yuhaochen/lexipost/internal/config"
	"github.com/yuhaochen/lexipost/internal/generator"
	"github.com/yuhaochen/lexipost/internal/imagegen"
	"github.com/yuhaochen/lexipost/internal/logger"
	"github.com/yuhaochen/lexipost/internal/publisher"
	"github.com/yuhaochen/lexipost/internal/recorder"
	"github.com/yuhaochen/lexipost/internal/scheduler"
	"github.com/yuhaochen/lexipost/internal/store"
	"github.com/yuhaochen/lexipost/internal/webhook"
)

const usage = `lexipost - automated word-learning posts for Xiaohongshu

Usage:
  lexipost once [-word W] [-theme T] [-level L]
                                        run a single posting cycle
  lexipost schedule                     run posting cycles on the configured schedule
  lexipost serve                        run the webhook trigger server
  lexipost analytics                    print the engagement comparison report
  lexipost export [-o file.csv]         export post and engagement data as CSV
  lexipost interactions -post ID [-likes N] [-favorites N] [-comments N] [-views N]
                                        record engagement numbers for a post
  lexipost login                        log in to the creator site (for browser publishing)
  lexipost logout                       clear the stored creator-site session
`

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := loadConfig(log)

	var err error
	switch os.Args[1] {
	case "once":
		err = runOnce(cfg, log, os.Args[2:])
	case "schedule":
		err = runSchedule(cfg, log)
	case "serve":
		err = runServe(cfg, log)
	case "analytics":
		err = runAnalytics(cfg, log)
	case "export":
		err = runExport(cfg, log, os.Args[2:])
	case "interactions":
		err = runInteractions(cfg, log, os.Args[2:])
	case "login":
		err = runLogin(log)
	case "logout":
		err = runLogout(log)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// loadConfig loads the config file, creating a default one on first run.
func loadConfig(log zerolog.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if os.IsNotExist(err) {
			cfg = config.Default()
			if err := cfg.Save(); err != nil {
				log.Warn().Err(err).Msg("could not save default config")
			} else {
				path, _ := config.ConfigPath()
				log.Info().Str("path", path).Msg("created default config")
			}
		} else {
			log.Warn().Err(err).Msg("could not load config, using defaults")
			cfg = config.Default()
		}
	}
	return cfg
}

func buildApp(cfg *config.Config, log zerolog.Logger) (*app.App, *store.Store, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open data store: %w", err)
	}

	gen, err := generator.New(cfg.Generation, log)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	mgr, err := authManager()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	a := app.New(
		cfg,
		gen,
		imagegen.New(cfg.Image, log),
		publisher.New(cfg.Publish, mgr, log),
		recorder.New(st, cfg.Recording.Enabled, log),
		analytics.New(st),
		log,
	)
	return a, st, nil
}

func runOnce(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("once", flag.ExitOnError)
	word := fs.String("word", "", "word to post about (picked from the wordlist when empty)")
	theme := fs.String("theme", "", "free theme instead of a word")
	level := fs.String("level", "", "difficulty level, e.g. CET-4")
	fs.Parse(args)

	a, st, err := buildApp(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	result, err := a.CreateAndPublish(ctx, app.PostRequest{Word: *word, Theme: *theme, Level: *level})
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Printf("skipped: %s (%s) already produced\n", result.Word, result.Level)
		return nil
	}
	fmt.Printf("posted: %s\n", result.Title)
	if result.Publish != nil {
		fmt.Printf("  method: %s\n", result.Publish.Method)
		if result.Publish.TextPath != "" {
			fmt.Printf("  saved:  %s\n", result.Publish.TextPath)
		}
		if result.Publish.PostURL != "" {
			fmt.Printf("  url:    %s\n", result.Publish.PostURL)
		}
	}
	if result.PostID != 0 {
		fmt.Printf("  record: #%d\n", result.PostID)
	}
	return nil
}

func runSchedule(cfg *config.Config, log zerolog.Logger) error {
	a, st, err := buildApp(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	sched, err := scheduler.New(cfg.Schedule.Timezone, log)
	if err != nil {
		return err
	}
	job := func(ctx context.Context) error {
		_, err := a.CreateAndPublish(ctx, app.PostRequest{})
		return err
	}
	if err := sched.AddPostJob(cfg.Schedule.IntervalHours, job); err != nil {
		return err
	}
	sched.Start()
	log.Info().Int("interval_hours", cfg.Schedule.IntervalHours).
		Str("timezone", cfg.Schedule.Timezone).Msg("scheduler running")

	waitForSignal(a, log)
	<-sched.Stop().Done()
	return nil
}

func runServe(cfg *config.Config, log zerolog.Logger) error {
	a, st, err := buildApp(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := webhook.New(a, cfg.Webhook.Port, log)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	done := make(chan struct{})
	go func() {
		waitForSignal(a, log)
		close(done)
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func runAnalytics(cfg *config.Config, log zerolog.Logger) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	report, err := analytics.New(st).Report()
	if err != nil {
		return err
	}
	report.Render(os.Stdout)
	return nil
}

func runExport(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (stdout when empty)")
	fs.Parse(args)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := analytics.New(st).WriteCSV(w); err != nil {
		return err
	}
	if *out != "" {
		log.Info().Str("path", *out).Msg("export written")
	}
	return nil
}

func runInteractions(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("interactions", flag.ExitOnError)
	postID := fs.Int64("post", 0, "post record id")
	likes := fs.Int("likes", 0, "like count")
	favorites := fs.Int("favorites", 0, "favorite count")
	comments := fs.Int("comments", 0, "comment count")
	views := fs.Int("views", 0, "view count")
	fs.Parse(args)

	if *postID == 0 {
		return fmt.Errorf("-post is required")
	}

	// Only flags the user actually passed become part of the update.
	var delta store.InteractionDelta
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "likes":
			delta.Likes = likes
		case "favorites":
			delta.Favorites = favorites
		case "comments":
			delta.Comments = comments
		case "views":
			delta.Views = views
		}
	})
	if delta.Empty() {
		return fmt.Errorf("nothing to update, pass at least one of -likes, -favorites, -comments, -views")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := recorder.New(st, cfg.Recording.Enabled, log)
	if err := rec.UpdateInteractions(*postID, delta); err != nil {
		return err
	}
	fmt.Printf("updated interactions for post #%d\n", *postID)
	return nil
}

func runLogin(log zerolog.Logger) error {
	mgr, err := authManager()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Println("A browser window will open. Log in with QR code or SMS.")
	if err := mgr.Login(ctx); err != nil {
		return err
	}
	log.Info().Msg("logged in, session saved")
	return nil
}

func runLogout(log zerolog.Logger) error {
	mgr, err := authManager()
	if err != nil {
		return err
	}
	if err := mgr.Logout(); err != nil {
		return err
	}
	log.Info().Msg("session cleared")
	return nil
}

func authManager() (*auth.Manager, error) {
	path, err := auth.DefaultCookieStorePath()
	if err != nil {
		return nil, err
	}
	return auth.NewManager(auth.NewCookieStore(path)), nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}
	return store.New(dbPath)
}

// waitForSignal blocks until SIGINT/SIGTERM, reloading configuration on
// SIGHUP in the meantime.
func waitForSignal(a *app.App, log zerolog.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range ch {
		if sig != syscall.SIGHUP {
			break
		}
		reloadApp(a, log)
	}
	log.Info().Msg("shutting down")
}

func reloadApp(a *app.App, log zerolog.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("reload failed, keeping current config")
		return
	}
	mgr, err := authManager()
	if err != nil {
		log.Error().Err(err).Msg("reload failed, keeping current config")
		return
	}
	if err := a.ReloadConfig(publisher.New(cfg.Publish, mgr, log)); err != nil {
		log.Error().Err(err).Msg("reload failed, keeping current config")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/pronos-app/pronos/pkg/config"
	"github.com/pronos-app/pronos/pkg/domain"
	"github.com/pronos-app/pronos/pkg/feedstate"
	"github.com/pronos-app/pronos/pkg/remote"
	"github.com/pronos-app/pronos/pkg/repository"
	"github.com/pronos-app/pronos/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"PRONOS_CONFIG" default:"pronos.yml" description:"configuration file"`

	Serve struct{} `command:"serve" description:"run the backend server"`
	Feed  FeedCmd  `command:"feed" description:"print the feed, most recent posts first"`
	Post  PostCmd  `command:"post" description:"publish a prediction as the configured user"`
	News  NewsCmd  `command:"news" description:"publish a news entry as the configured user"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// FeedCmd options of the feed command
type FeedCmd struct {
	Pages int `short:"p" long:"pages" default:"1" description:"number of pages to load"`
}

// PostCmd options of the post command
type PostCmd struct {
	Text       string `short:"t" long:"text" required:"true" description:"prediction text"`
	Image      string `short:"i" long:"image" description:"image url"`
	Odds       string `short:"o" long:"odds" description:"total odds, comma or period as decimal separator"`
	Confidence int    `long:"confidence" default:"50" description:"confidence, 0-100"`
}

// NewsCmd options of the news command
type NewsCmd struct {
	Title   string `long:"title" required:"true" description:"news title"`
	Content string `long:"content" required:"true" description:"news content"`
	Source  string `long:"source" description:"news source"`
	Image   string `long:"image" description:"image url"`
}

var revision = "unknown"

const statsInterval = time.Hour

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, parser.Active.Name, os.Stdout)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		os.Exit(1)
	}
}

// run loads configuration and executes the command
func run(ctx context.Context, opts Opts, command string, out io.Writer) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLog(opts.Debug, cfg.Secrets()...)

	switch command {
	case "serve":
		return runServer(ctx, cfg, opts.Debug)
	case "feed":
		return runFeed(ctx, cfg, opts.Feed, out)
	case "post":
		return runPost(ctx, cfg, opts.Post, out)
	case "news":
		return runNews(ctx, cfg, opts.News, out)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// runServer opens the database, provisions configured profiles and serves the API until ctx is canceled
func runServer(ctx context.Context, cfg *config.Config, debug bool) error {
	lgr.Printf("[INFO] starting pronos server version %s", revision)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	for _, p := range cfg.Profiles {
		profile := &domain.Profile{Username: p.Username, AvatarURL: p.AvatarURL, Token: p.Token}
		if err := repos.Profile.UpsertProfile(ctx, profile); err != nil {
			return fmt.Errorf("failed to provision profile %s: %w", p.Username, err)
		}
		lgr.Printf("[INFO] profile %s ready, id %s", profile.Username, profile.ID)
	}

	srv := server.New(cfg, server.NewRepositoryAdapter(repos), revision, debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		reportStats(gctx, repos, statsInterval)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	lgr.Print("[INFO] shutdown complete")
	return nil
}

// reportStats logs the number of posts and news periodically until ctx is done
func reportStats(ctx context.Context, repos *repository.Repositories, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			posts, err := repos.Post.CountPosts(ctx)
			if err != nil {
				lgr.Printf("[WARN] can't count posts: %v", err)
				continue
			}
			news, err := repos.News.CountNews(ctx)
			if err != nil {
				lgr.Printf("[WARN] can't count news: %v", err)
				continue
			}
			lgr.Printf("[INFO] stats: %d posts, %d news", posts, news)
		}
	}
}

func newClient(cfg *config.Config) *remote.Client {
	return remote.New(remote.Params{
		URL:     cfg.Client.URL,
		APIKey:  cfg.Client.APIKey,
		Token:   cfg.Client.Token,
		Timeout: cfg.Client.Timeout,
	})
}

// runFeed loads up to cmd.Pages pages and prints the posts
func runFeed(ctx context.Context, cfg *config.Config, cmd FeedCmd, out io.Writer) error {
	store := feedstate.New(newClient(cfg))
	for i := 0; i < cmd.Pages && store.State().HasMore; i++ {
		store.FetchMorePosts(ctx)
	}

	posts := store.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(out, "no posts")
		return nil
	}
	for _, p := range posts {
		printPost(out, p)
	}
	state := store.State()
	lgr.Printf("[DEBUG] loaded %d posts in %d pages, has more: %v", len(posts), state.Page, state.HasMore)
	return nil
}

// runPost publishes a post through the feed store and prints it
func runPost(ctx context.Context, cfg *config.Config, cmd PostCmd, out io.Writer) error {
	store := feedstate.New(newClient(cfg))
	post, err := store.AddPost(ctx, feedstate.NewPostInput{
		Text:       cmd.Text,
		Image:      cmd.Image,
		TotalOdds:  cmd.Odds,
		Confidence: cmd.Confidence,
	})
	if err != nil {
		return err
	}
	printPost(out, *post)
	return nil
}

// runNews publishes a news entry
func runNews(ctx context.Context, cfg *config.Config, cmd NewsCmd, out io.Writer) error {
	client := newClient(cfg)
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if user == nil {
		return errors.New("user not authenticated")
	}

	news, err := client.InsertNews(ctx, domain.NewNews{Title: cmd.Title, Content: cmd.Content, Source: cmd.Source, ImageURL: cmd.Image})
	if err != nil {
		return fmt.Errorf("error adding news: %w", err)
	}
	fmt.Fprintf(out, "%s  @%s  %s\n", news.CreatedAt.Local().Format("2006-01-02 15:04"), user.Username, news.Title)
	return nil
}

func printPost(out io.Writer, p domain.Post) {
	header := color.New(color.FgCyan).Sprintf("%s  @%s", p.CreatedAt.Local().Format("2006-01-02 15:04"), p.User.Username)
	fmt.Fprintf(out, "%s  odds %.2f  confidence %d%%\n", header, p.Odds, p.Confidence)
	fmt.Fprintf(out, "  %s\n", p.Content)
	if p.ImageURL != "" {
		fmt.Fprintf(out, "  image: %s\n", p.ImageURL)
	}
	fmt.Fprintf(out, "  likes %d  comments %d  shares %d  id %s\n", p.Likes, p.Comments, p.Shares, p.ID)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr)}
	if dbg {
		logOpts = []lgr.Option{lgr.Out(os.Stderr), lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

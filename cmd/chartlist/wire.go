package main

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/dkaplan/chartlist/internal/browser"
	"github.com/dkaplan/chartlist/internal/catalog"
	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/config"
	"github.com/dkaplan/chartlist/internal/db"
	"github.com/dkaplan/chartlist/internal/genre"
	"github.com/dkaplan/chartlist/internal/playlist"
	"github.com/dkaplan/chartlist/internal/proxyfetch"
	"github.com/dkaplan/chartlist/internal/session"
	"github.com/dkaplan/chartlist/internal/tracks"
)

// deps holds the wired pipeline components shared by the commands.
type deps struct {
	cfg      *config.Config
	database *db.DB
	renderer *browser.Renderer
	charts   *chart.Service
	genres   *genre.Directory
}

// buildDeps wires the acquisition pipeline from configuration.
func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	renderer := browser.New(browser.Options{Verbose: cfg.Verbose})
	proxy := proxyfetch.New(cfg.ProxyAPIKey, cfg.Verbose)

	resolver := chart.NewResolver(
		chart.NewBrowserFetcher(renderer),
		chart.NewProxyFetcher(proxy),
	)
	charts := chart.NewService(database, resolver, cfg.ChartBaseURL, cfg.Verbose)

	genres := genre.NewDirectory(
		&browserDirectorySource{renderer: renderer},
		cfg.ChartBaseURL+"/genres",
	)

	return &deps{
		cfg:      cfg,
		database: database,
		renderer: renderer,
		charts:   charts,
		genres:   genres,
	}, nil
}

func (d *deps) close() {
	d.database.Close()
}

// buildPlaylistBuilder wires the playlist side, which needs an
// authenticated catalog session. The returned token source is the one
// the catalog client refreshes through; callers pull the current token
// back out of it to persist a refresh.
func (d *deps) buildPlaylistBuilder(ctx context.Context) (*playlist.Builder, *session.Store, oauth2.TokenSource, error) {
	store := session.NewStore(d.cfg.SessionFile)
	if err := store.Load(); err != nil {
		return nil, nil, nil, err
	}
	token, err := store.Token()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w (run the login flow and save a token to %s)", err, d.cfg.SessionFile)
	}

	source := d.cfg.OAuth().TokenSource(ctx, token)
	cat := catalog.NewSpotify(oauth2.NewClient(ctx, source))

	orderer := tracks.NewOrderResolver(d.renderer, d.cfg.ChartBaseURL, d.cfg.Verbose)
	builder := playlist.NewBuilder(cat, orderer, d.cfg.TracksPerAlbum, d.cfg.Concurrency, d.cfg.Verbose)
	return builder, store, source, nil
}

// browserDirectorySource renders the genre index page and parses its
// directory links.
type browserDirectorySource struct {
	renderer *browser.Renderer
}

func (s *browserDirectorySource) FetchGenres(ctx context.Context, indexURL string) ([]genre.Link, error) {
	html, err := s.renderer.Render(ctx, indexURL, "a[href*='/genre/']")
	if err != nil {
		return nil, err
	}
	return genre.ParseDirectoryHTML(html)
}

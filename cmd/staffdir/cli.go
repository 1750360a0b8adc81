package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Selectors staffdir.SelectorService
	Fetcher   staffdir.Fetcher
	Scraper   staffdir.Scraper
	Snippets  staffdir.SnippetFinder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"STAFFDIR_DB" default:"${db_path}" help:"SQLite database path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Scrape    ScrapeCmd    `cmd:"" help:"Scrape staff records from a directory page"`
	Serve     ServeCmd     `cmd:"" help:"Serve the HTTP API"`
	Snippets  SnippetsCmd  `cmd:"" help:"Suggest card selectors for a page"`
	Selectors SelectorsCmd `cmd:"" help:"Manage the selector configuration"`
}

// FetchFlags configure page fetching for commands that load pages.
type FetchFlags struct {
	NoBrowser         bool          `name:"no-browser" help:"Fetch raw HTML over HTTP instead of rendering in Chrome"`
	Timeout           time.Duration `default:"30s" help:"Per-page fetch timeout"`
	NavTimeout        time.Duration `name:"nav-timeout" default:"30s" help:"Browser navigation timeout"`
	RenderTimeout     time.Duration `default:"15s" help:"How long to wait for directory markup to render"`
	Concurrency       int           `short:"c" default:"3" help:"Concurrent sub-page fetch limit"`
	MaxPages          int           `default:"10" help:"Maximum pagination pages to follow"`
	MaxSubPages       int           `default:"10" help:"Maximum directory links to follow"`
	RequestsPerSecond float64       `name:"rps" default:"2" help:"Requests per second per host"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL             string `arg:"" help:"Staff directory URL"`
	Paginate        bool   `short:"p" help:"Follow next-page links"`
	Navigate        bool   `short:"n" help:"Follow links to other directory pages on the same host"`
	RequireSelector bool   `help:"Fail for domains without a configured card selector"`
	Format          string `short:"f" default:"json" enum:"json,csv,xlsx" help:"Output format (json, csv, xlsx)"`
	Output          string `short:"o" type:"path" help:"Write records to a file instead of stdout (xlsx defaults to staff_data.xlsx)"`

	FetchFlags `embed:""`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr            string `env:"STAFFDIR_ADDR" default:":3000" help:"Listen address"`
	RequireSelector bool   `help:"Reject domains without a configured card selector"`

	FetchFlags `embed:""`
}

// SnippetsCmd is the "snippets" subcommand.
type SnippetsCmd struct {
	URL   string `arg:"" help:"Staff directory URL"`
	Limit int    `short:"l" default:"50" help:"Maximum number of candidates"`
	Full  bool   `help:"Show the HTML of each candidate instead of a preview"`

	FetchFlags `embed:""`
}

// SelectorsCmd groups the selector configuration subcommands.
type SelectorsCmd struct {
	List     SelectorsListCmd     `cmd:"" help:"Show the selector configuration"`
	Set      SelectorsSetCmd      `cmd:"" help:"Set the card selector for a domain"`
	Delete   SelectorsDeleteCmd   `cmd:"" help:"Remove a domain's card selector"`
	AddName  SelectorsAddNameCmd  `cmd:"" name:"add-name" help:"Append a class to the name ladder"`
	AddTitle SelectorsAddTitleCmd `cmd:"" name:"add-title" help:"Append a class to the job title ladder"`
	Import   SelectorsImportCmd   `cmd:"" help:"Replace the configuration from a YAML file"`
}

// SelectorsListCmd is the "selectors list" subcommand.
type SelectorsListCmd struct {
	YAML bool `help:"Print as YAML suitable for 'selectors import'"`
}

// SelectorsSetCmd is the "selectors set" subcommand.
type SelectorsSetCmd struct {
	Domain   string `arg:"" help:"Domain key (e.g. lausd) or a page URL"`
	Selector string `arg:"" help:"CSS selector matching one staff card"`
}

// SelectorsDeleteCmd is the "selectors delete" subcommand.
type SelectorsDeleteCmd struct {
	Domain string `arg:"" help:"Domain key"`
}

// SelectorsAddNameCmd is the "selectors add-name" subcommand.
type SelectorsAddNameCmd struct {
	Class string `arg:"" help:"Class name or CSS selector"`
}

// SelectorsAddTitleCmd is the "selectors add-title" subcommand.
type SelectorsAddTitleCmd struct {
	Class string `arg:"" help:"Class name or CSS selector"`
}

// SelectorsImportCmd is the "selectors import" subcommand.
type SelectorsImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file with staffClasses, nameClasses and jobTitleClasses"`
}

package main

import (
	"fmt"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	format, err := fs.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	req := staffdir.ScrapeRequest{
		URL:                       c.URL,
		PaginationEnabled:         c.Paginate,
		InternalNavigationEnabled: c.Navigate,
	}
	records, err := deps.Scraper.Scrape(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeMessage(err))
		return err
	}

	output := c.Output
	if output == "" && format == fs.FormatXLSX {
		output = fs.DefaultXLSXPath
	}
	if output == "" {
		return fs.Encode(deps.Stdout, format, c.URL, records)
	}

	if err := fs.NewExportWriter(output, format).WriteRecords(deps.Ctx, c.URL, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %d records to %s\n", len(records), output)
	return nil
}

// scrapeMessage shows the underlying cause of renderer failures, which carry
// no application error code.
func scrapeMessage(err error) string {
	if staffdir.ErrorCode(err) == staffdir.EINTERNAL {
		return err.Error()
	}
	return staffdir.ErrorMessage(err)
}

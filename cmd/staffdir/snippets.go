package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/staffdir"
)

// Run executes the snippets command.
func (c *SnippetsCmd) Run(deps *Dependencies) error {
	if _, err := staffdir.ResolveDomainKey(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL, staffdir.SnippetWaitSelector)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to fetch %s: %s\n", c.URL, err)
		return err
	}

	snippets, err := deps.Snippets.FindSnippets(html, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	if len(snippets) == 0 {
		fmt.Fprintln(deps.Stdout, "No repeating elements found.")
		return nil
	}

	for _, sn := range snippets {
		fmt.Fprintf(deps.Stdout, "%s  (%d)\n", sn.Selector, sn.Count)
		body := sn.Preview
		if c.Full || body == "" {
			body = sn.HTML
		}
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(deps.Stdout, "    %s\n", line)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

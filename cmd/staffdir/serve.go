package main

import (
	"fmt"

	"github.com/fwojciec/staffdir/goquery"
	sdhttp "github.com/fwojciec/staffdir/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := sdhttp.NewServer()
	s.Addr = c.Addr
	s.Scraper = deps.Scraper
	s.Selectors = deps.Selectors
	s.Fetcher = deps.Fetcher
	s.Snippets = deps.Snippets
	s.Logger = deps.Logger
	s.ValidateConfig = goquery.ValidateSelectorConfig
	s.ValidateUpdate = goquery.ValidateSelectorUpdate

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	return s.Close()
}

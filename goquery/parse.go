// Package goquery implements staff extraction, link discovery and selector
// discovery over HTML documents using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/staffdir"
	"golang.org/x/net/html"
)

// ParseHTML parses a rendered page into a document tree.
func ParseHTML(src string) (*goquery.Document, error) {
	node, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, staffdir.Errorf(staffdir.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(node), nil
}

// ValidateSelector returns EINVALID if selector is not a valid CSS selector group.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return staffdir.Errorf(staffdir.EINVALID, "selector required")
	}
	if _, err := cascadia.ParseGroup(selector); err != nil {
		return staffdir.Errorf(staffdir.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return nil
}

// ValidateSelectorConfig checks every card selector and ladder entry of cfg.
func ValidateSelectorConfig(cfg *staffdir.SelectorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, domain := range cfg.Domains() {
		if err := ValidateSelector(cfg.StaffClasses[domain].Selector); err != nil {
			return err
		}
	}
	for _, class := range cfg.NameClasses {
		if err := ValidateSelector(ladderSelector(class)); err != nil {
			return err
		}
	}
	for _, class := range cfg.JobTitleClasses {
		if err := ValidateSelector(ladderSelector(class)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSelectorUpdate checks the selectors carried by a discovery selection.
func ValidateSelectorUpdate(upd staffdir.SelectorUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}
	if err := ValidateSelector(upd.StaffClasses); err != nil {
		return err
	}
	for _, class := range []string{upd.NameClasses, upd.JobTitleClasses} {
		if strings.TrimSpace(class) == "" {
			continue
		}
		if err := ValidateSelector(ladderSelector(staffdir.NormalizeClass(class))); err != nil {
			return err
		}
	}
	return nil
}

// ladderSelector turns a ladder entry into a selector. Plain class names are
// probed as class selectors; anything else is already a selector.
func ladderSelector(entry string) string {
	if staffdir.IsPlainClass(entry) {
		return "." + entry
	}
	return entry
}

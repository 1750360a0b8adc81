package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/goquery"
	"gopkg.in/yaml.v3"
)

// Run executes the selectors list command.
func (c *SelectorsListCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Selectors.FindSelectorConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	if c.YAML {
		enc := yaml.NewEncoder(deps.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(cfg.StaffClasses) == 0 {
		fmt.Fprintln(deps.Stdout, "No domains configured. Use 'staffdir selectors set' to add one.")
	}
	for _, domain := range cfg.Domains() {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", domain, cfg.StaffClasses[domain].Selector)
	}
	fmt.Fprintf(deps.Stdout, "\nname classes:      %s\n", strings.Join(cfg.NameLadder(), ", "))
	fmt.Fprintf(deps.Stdout, "job title classes: %s\n", strings.Join(cfg.JobTitleLadder(), ", "))
	return nil
}

// Run executes the selectors set command.
func (c *SelectorsSetCmd) Run(deps *Dependencies) error {
	domain, err := domainKey(c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	selector := strings.TrimSpace(c.Selector)
	if err := goquery.ValidateSelector(selector); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	cfg, err := deps.Selectors.FindSelectorConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	cfg.StaffClasses[domain] = staffdir.DomainSelector{Domain: domain, Selector: selector}

	if err := deps.Selectors.ReplaceSelectorConfig(deps.Ctx, cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Set %s  %s\n", domain, selector)
	return nil
}

// Run executes the selectors delete command.
func (c *SelectorsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Selectors.DeleteDomainSelector(deps.Ctx, c.Domain); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted %s\n", strings.ToLower(strings.TrimSpace(c.Domain)))
	return nil
}

// Run executes the selectors add-name command.
func (c *SelectorsAddNameCmd) Run(deps *Dependencies) error {
	return appendClass(deps, c.Class, "name", func(cfg *staffdir.SelectorConfig) *[]string {
		return &cfg.NameClasses
	}, staffdir.DefaultNameClasses)
}

// Run executes the selectors add-title command.
func (c *SelectorsAddTitleCmd) Run(deps *Dependencies) error {
	return appendClass(deps, c.Class, "job title", func(cfg *staffdir.SelectorConfig) *[]string {
		return &cfg.JobTitleClasses
	}, staffdir.DefaultJobTitleClasses)
}

// appendClass adds class to the end of a ladder unless it is already there.
// An empty stored ladder starts from the defaults so they stay in effect.
func appendClass(deps *Dependencies, class, label string, ladder func(*staffdir.SelectorConfig) *[]string, defaults func() []string) error {
	class = staffdir.NormalizeClass(class)
	if class == "" {
		err := staffdir.Errorf(staffdir.EINVALID, "Class is required.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	if !staffdir.IsPlainClass(class) {
		if err := goquery.ValidateSelector(class); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
			return err
		}
	}

	cfg, err := deps.Selectors.FindSelectorConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	classes := ladder(cfg)
	if len(*classes) == 0 {
		*classes = defaults()
	}
	if slices.Contains(*classes, class) {
		fmt.Fprintf(deps.Stdout, "%s is already in the %s ladder\n", class, label)
		return nil
	}
	*classes = append(*classes, class)

	if err := deps.Selectors.ReplaceSelectorConfig(deps.Ctx, cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Added %s to the %s ladder\n", class, label)
	return nil
}

// Run executes the selectors import command.
func (c *SelectorsImportCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	var cfg staffdir.SelectorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		err = staffdir.Errorf(staffdir.EINVALID, "Invalid YAML: %s", err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	if cfg.StaffClasses == nil {
		cfg.StaffClasses = make(map[string]staffdir.DomainSelector)
	}
	for key, ds := range cfg.StaffClasses {
		if ds.Domain == "" {
			ds.Domain = key
			cfg.StaffClasses[key] = ds
		}
	}

	if err := goquery.ValidateSelectorConfig(&cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	if err := deps.Selectors.ReplaceSelectorConfig(deps.Ctx, &cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Imported %d domains\n", len(cfg.StaffClasses))
	return nil
}

// domainKey accepts a bare domain key or a page URL.
func domainKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		key, err := staffdir.ResolveDomainKey(s)
		if err != nil {
			return "", err
		}
		if key == "" {
			return "", staffdir.Errorf(staffdir.EINVALID, "Domain could not be determined from URL.")
		}
		return key, nil
	}
	if s == "" || strings.ContainsAny(s, " /") {
		return "", staffdir.Errorf(staffdir.EINVALID, "Invalid domain %q.", s)
	}
	return strings.ToLower(s), nil
}

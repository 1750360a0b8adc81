package staffdir

import (
	"context"
	"sort"
	"strings"
)

// DefaultNameClasses returns the default name class ladder.
func DefaultNameClasses() []string {
	return []string{"fsFullName", "ws-dd-person-name", "DIR-name", "email", "vc_custom_heading"}
}

// DefaultJobTitleClasses returns the default job title class ladder.
func DefaultJobTitleClasses() []string {
	return []string{"fsTitles", "ws-dd-person-position", "DIR-title", "user-position"}
}

// DomainSelector maps a domain key to the selector of its repeating staff card.
type DomainSelector struct {
	Domain   string `json:"domain" yaml:"domain"`
	Selector string `json:"selector" yaml:"selector"`
}

// SelectorConfig holds the per-domain card selectors and the class ladders
// used to locate fields inside a card. It is read-only to extraction.
type SelectorConfig struct {
	// StaffClasses maps a domain key to its card selector.
	StaffClasses map[string]DomainSelector `json:"staffClasses" yaml:"staffClasses"`

	// NameClasses is the ordered name class ladder. Empty means the default.
	NameClasses []string `json:"nameClasses" yaml:"nameClasses"`

	// JobTitleClasses is the ordered job title ladder. Empty means the default.
	JobTitleClasses []string `json:"jobTitleClasses" yaml:"jobTitleClasses"`
}

// DefaultSelectorConfig returns the built-in configuration used to seed a new store.
func DefaultSelectorConfig() *SelectorConfig {
	cfg := &SelectorConfig{
		StaffClasses:    make(map[string]DomainSelector),
		NameClasses:     DefaultNameClasses(),
		JobTitleClasses: DefaultJobTitleClasses(),
	}
	for domain, selector := range map[string]string{
		"aisd":                     ".ws-dd-person-information",
		"mansfieldisd":             ".fsConstituentItem",
		"lmsd":                     ".fsConstituentItem",
		"d11":                      ".fsConstituentItem",
		"mnps":                     ".DIR-item",
		"edwardsburgpublicschools": ".staff",
		"rcboe":                    ".ui-article-description",
		"prsd1435":                 ".staff",
		"ga":                       ".fsConstituentItem",
		"benzieschools":            ".vc_grid-item",
		"lausd":                    ".staff",
		"bufsd":                    ".fsConstituentItem",
		"southwestr1":              ".wixui-column-strip",
	} {
		cfg.StaffClasses[domain] = DomainSelector{Domain: domain, Selector: selector}
	}
	return cfg
}

// Validate returns an error if the configuration contains invalid fields.
func (c *SelectorConfig) Validate() error {
	for key, ds := range c.StaffClasses {
		if strings.TrimSpace(key) == "" {
			return Errorf(EINVALID, "domain key required")
		}
		if strings.TrimSpace(ds.Selector) == "" {
			return Errorf(EINVALID, "selector required for domain %q", key)
		}
	}
	for _, class := range c.NameClasses {
		if strings.TrimSpace(class) == "" {
			return Errorf(EINVALID, "name class must not be empty")
		}
	}
	for _, class := range c.JobTitleClasses {
		if strings.TrimSpace(class) == "" {
			return Errorf(EINVALID, "job title class must not be empty")
		}
	}
	return nil
}

// CardSelector returns the card selector configured for a domain key, or ""
// if the domain has none. Safe to call on a nil config.
func (c *SelectorConfig) CardSelector(key string) string {
	if c == nil || key == "" {
		return ""
	}
	return c.StaffClasses[key].Selector
}

// NameLadder returns the name class ladder to probe, in order.
func (c *SelectorConfig) NameLadder() []string {
	if c == nil || len(c.NameClasses) == 0 {
		return DefaultNameClasses()
	}
	return append([]string(nil), c.NameClasses...)
}

// JobTitleLadder returns the job title class ladder to probe, in order.
func (c *SelectorConfig) JobTitleLadder() []string {
	if c == nil || len(c.JobTitleClasses) == 0 {
		return DefaultJobTitleClasses()
	}
	return append([]string(nil), c.JobTitleClasses...)
}

// Domains returns the configured domain keys in sorted order.
func (c *SelectorConfig) Domains() []string {
	if c == nil {
		return nil
	}
	domains := make([]string, 0, len(c.StaffClasses))
	for domain := range c.StaffClasses {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// NormalizeClass trims a ladder entry and drops the leading dot of a plain
// class selector, so ".fsTitles" and "fsTitles" are stored the same way.
func NormalizeClass(class string) string {
	class = strings.TrimSpace(class)
	if rest, ok := strings.CutPrefix(class, "."); ok && IsPlainClass(rest) {
		return rest
	}
	return class
}

// IsPlainClass reports whether s is a bare class name rather than a selector.
func IsPlainClass(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".#[]:> ~+*,")
}

// SelectorUpdate is one selection made in the interactive discovery flow.
type SelectorUpdate struct {
	URL             string `json:"url"`
	StaffClasses    string `json:"staffClasses"`
	NameClasses     string `json:"nameClasses"`
	JobTitleClasses string `json:"jobTitleClasses"`
}

// Validate returns an error if the update contains invalid fields.
func (u *SelectorUpdate) Validate() error {
	if u.URL == "" {
		return Errorf(EINVALID, "URL is required.")
	}
	if strings.TrimSpace(u.StaffClasses) == "" {
		return Errorf(EINVALID, "staff selector is required.")
	}
	return nil
}

// SelectorService represents a service for managing the selector configuration.
type SelectorService interface {
	// FindSelectorConfig returns the current configuration.
	FindSelectorConfig(ctx context.Context) (*SelectorConfig, error)

	// ReplaceSelectorConfig replaces the whole configuration.
	ReplaceSelectorConfig(ctx context.Context, cfg *SelectorConfig) error

	// ApplySelectorUpdate sets the card selector of the domain that upd.URL
	// resolves to and appends any new name or job title class to its ladder.
	// Returns EINVALID if the URL cannot be resolved.
	ApplySelectorUpdate(ctx context.Context, upd SelectorUpdate) error

	// DeleteDomainSelector removes the card selector of a domain.
	// Returns ENOTFOUND if the domain has no selector.
	DeleteDomainSelector(ctx context.Context, domain string) error
}

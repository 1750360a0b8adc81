package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/staffdir"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ staffdir.SelectorService = (*SelectorService)(nil)

const (
	ladderName  = "name"
	ladderTitle = "title"
)

// SelectorService implements staffdir.SelectorService using SQLite.
type SelectorService struct {
	db *DB
}

// NewSelectorService creates a new SelectorService.
func NewSelectorService(db *DB) *SelectorService {
	return &SelectorService{db: db}
}

// FindSelectorConfig returns the stored configuration. Ladders keep the order
// in which classes were added.
func (s *SelectorService) FindSelectorConfig(ctx context.Context) (*staffdir.SelectorConfig, error) {
	cfg := &staffdir.SelectorConfig{
		StaffClasses:    make(map[string]staffdir.DomainSelector),
		NameClasses:     []string{},
		JobTitleClasses: []string{},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT domain, selector FROM domain_selectors ORDER BY domain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ds staffdir.DomainSelector
		if err := rows.Scan(&ds.Domain, &ds.Selector); err != nil {
			return nil, err
		}
		cfg.StaffClasses[ds.Domain] = ds
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cfg.NameClasses, err = s.findLadder(ctx, ladderName); err != nil {
		return nil, err
	}
	if cfg.JobTitleClasses, err = s.findLadder(ctx, ladderTitle); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s *SelectorService) findLadder(ctx context.Context, ladder string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT class FROM ladder_classes WHERE ladder = ? ORDER BY position
	`, ladder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []string{}
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// ReplaceSelectorConfig replaces the stored configuration in one transaction.
// Domains present before and after keep their creation time.
func (s *SelectorService) ReplaceSelectorConfig(ctx context.Context, cfg *staffdir.SelectorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.replace(ctx, tx, cfg); err != nil {
		return err
	}

	return tx.Commit()
}

// SeedSelectorConfig stores cfg unless the store was seeded or written
// before. Reports whether cfg was stored.
func (s *SelectorService) SeedSelectorConfig(ctx context.Context, cfg *staffdir.SelectorConfig) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var seeded int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings WHERE key = 'seeded'`).Scan(&seeded); err != nil {
		return false, err
	}
	if seeded > 0 {
		return false, nil
	}

	if err := s.replace(ctx, tx, cfg); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (s *SelectorService) replace(ctx context.Context, tx *sql.Tx, cfg *staffdir.SelectorConfig) error {
	now := s.db.timestamp()

	// Keys are stored the way ResolveDomainKey produces them. When two keys
	// differ only in case, the later one in sorted order wins.
	selectors := make(map[string]string, len(cfg.StaffClasses))
	var domains []string
	for _, key := range cfg.Domains() {
		domain := domainKey(key)
		if _, ok := selectors[domain]; !ok {
			domains = append(domains, domain)
		}
		selectors[domain] = strings.TrimSpace(cfg.StaffClasses[key].Selector)
	}
	for _, domain := range domains {
		if err := upsertDomain(ctx, tx, domain, selectors[domain], now); err != nil {
			return err
		}
	}

	if len(domains) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM domain_selectors`); err != nil {
			return err
		}
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(domains)), ",")
		args := make([]any, len(domains))
		for i, d := range domains {
			args[i] = d
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM domain_selectors WHERE domain NOT IN (`+placeholders+`)`, args...); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ladder_classes`); err != nil {
		return err
	}
	if err := insertLadder(ctx, tx, ladderName, cfg.NameClasses); err != nil {
		return err
	}
	if err := insertLadder(ctx, tx, ladderTitle, cfg.JobTitleClasses); err != nil {
		return err
	}

	return markSeeded(ctx, tx)
}

// ApplySelectorUpdate sets the card selector of the domain upd.URL resolves
// to and appends new name and job title classes to the end of their ladders.
// An empty stored ladder is filled with the defaults before appending.
func (s *SelectorService) ApplySelectorUpdate(ctx context.Context, upd staffdir.SelectorUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}

	domain, err := staffdir.ResolveDomainKey(upd.URL)
	if err != nil {
		return err
	}
	if domain == "" {
		return staffdir.Errorf(staffdir.EINVALID, "Domain could not be determined from URL.")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertDomain(ctx, tx, domain, strings.TrimSpace(upd.StaffClasses), s.db.timestamp()); err != nil {
		return err
	}

	if class := staffdir.NormalizeClass(upd.NameClasses); class != "" {
		if err := appendClass(ctx, tx, ladderName, class, staffdir.DefaultNameClasses()); err != nil {
			return err
		}
	}
	if class := staffdir.NormalizeClass(upd.JobTitleClasses); class != "" {
		if err := appendClass(ctx, tx, ladderTitle, class, staffdir.DefaultJobTitleClasses()); err != nil {
			return err
		}
	}

	if err := markSeeded(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDomainSelector removes the card selector of a domain.
func (s *SelectorService) DeleteDomainSelector(ctx context.Context, domain string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM domain_selectors WHERE domain = ?`, domainKey(domain))
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return staffdir.Errorf(staffdir.ENOTFOUND, "Domain selector not found.")
	}

	return nil
}

func domainKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func upsertDomain(ctx context.Context, tx *sql.Tx, domain, selector, now string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO domain_selectors (id, domain, selector, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (domain) DO UPDATE SET
			selector = excluded.selector,
			updated_at = excluded.updated_at
	`, uuid.New().String(), domain, selector, now, now)
	return err
}

func insertLadder(ctx context.Context, tx *sql.Tx, ladder string, classes []string) error {
	position := 0
	for _, class := range classes {
		class = strings.TrimSpace(class)
		result, err := tx.ExecContext(ctx, `
			INSERT INTO ladder_classes (id, ladder, class, position)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (ladder, class) DO NOTHING
		`, uuid.New().String(), ladder, class, position)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n > 0 {
			position++
		}
	}
	return nil
}

func appendClass(ctx context.Context, tx *sql.Tx, ladder, class string, defaults []string) error {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM ladder_classes WHERE ladder = ?`, ladder).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if err := insertLadder(ctx, tx, ladder, defaults); err != nil {
			return err
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO ladder_classes (id, ladder, class, position)
		SELECT ?, ?, ?, COALESCE(MAX(position) + 1, 0) FROM ladder_classes WHERE ladder = ?
		ON CONFLICT (ladder, class) DO NOTHING
	`, uuid.New().String(), ladder, class, ladder)
	return err
}

func markSeeded(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ('seeded', '1')
		ON CONFLICT (key) DO NOTHING
	`)
	return err
}

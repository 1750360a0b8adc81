package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// generation is one launched browser and the pages still open on it.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	open     int
	retired  bool
}

func (g *generation) close() error {
	err := g.browser.Close()
	g.launcher.Kill()
	return err
}

// BrowserManager hands out browser pages and restarts Chrome after a number of
// pages, since its memory baseline only grows. A retired browser is closed
// once its last page is released, so recycling never kills an in-flight fetch.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *generation
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages after which the browser is recycled.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	gen, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = gen

	return bm, nil
}

// NewPage opens a blank page. The release function closes the page and must
// be called exactly once.
func (bm *BrowserManager) NewPage() (*rod.Page, func(), error) {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil, nil, fmt.Errorf("browser manager is closed")
	}
	if bm.maxPages > 0 && bm.current.served >= bm.maxPages {
		bm.recycle()
	}
	gen := bm.current
	gen.served++
	gen.open++
	bm.mu.Unlock()

	page, err := gen.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release(gen)
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}

	var once sync.Once
	return page, func() {
		once.Do(func() {
			_ = page.Close()
			bm.release(gen)
		})
	}, nil
}

// Browser returns the browser new pages are currently opened on.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.current.browser
}

// LauncherPID returns the process ID of the current browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.current.close()
}

func (bm *BrowserManager) release(gen *generation) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	gen.open--
	if gen.retired && gen.open == 0 {
		_ = gen.close()
	}
}

// recycle swaps in a fresh browser. If the launch fails the old browser stays
// current. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	next, err := launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	old.retired = true
	if old.open == 0 {
		_ = old.close()
	}
}

// launch starts a browser with flags that keep background tabs rendering.
func launch() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &generation{browser: browser, launcher: l}, nil
}

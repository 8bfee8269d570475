package rod

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/natmusissunny/legalrights"
)

// DefaultMaxPages is how many pages one Chrome process serves before it is
// replaced. Chrome's memory grows steadily across page loads.
const DefaultMaxPages = 75

// DefaultLanguage is the browser locale, which government sites use to
// pick the Chinese rendition of a page.
const DefaultLanguage = "zh-CN"

// BrowserManager hands out browser tabs and replaces the Chrome process
// once it has served maxPages pages. A replaced process is retired, not
// killed: it stays alive until its last open page is released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	maxPages int
	lang     string

	mu      sync.Mutex
	current *session
	retired []*session
	closed  bool
}

// session is one Chrome process.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	inflight int
}

func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.maxPages = n
		}
	}
}

// WithLanguage sets the browser UI and Accept-Language locale.
// Defaults to DefaultLanguage.
func WithLanguage(lang string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.lang = lang
	}
}

// NewBrowserManager launches a headless Chrome. It fails when no Chrome or
// Chromium can be found or started. Close must be called when done.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		lang:     DefaultLanguage,
	}
	for _, opt := range opts {
		opt(bm)
	}

	s, err := launch(bm.lang)
	if err != nil {
		return nil, err
	}
	bm.current = s
	return bm, nil
}

// Page opens a blank tab. The returned release func closes the tab and
// must be called exactly once.
//
// If the current browser has used up its page budget a new one is
// launched first; if that launch fails the old browser keeps serving.
func (bm *BrowserManager) Page() (*rod.Page, func(), error) {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil, nil, legalrights.Errorf(legalrights.EINVALID, "browser is closed")
	}
	if bm.current.served >= bm.maxPages {
		bm.rotate()
	}
	s := bm.current
	s.served++
	s.inflight++
	bm.mu.Unlock()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release(s)
		return nil, nil, err
	}

	var once sync.Once
	return page, func() {
		once.Do(func() {
			_ = page.Close()
			bm.release(s)
		})
	}, nil
}

// rotate replaces the current session. Must be called with mu held.
func (bm *BrowserManager) rotate() {
	next, err := launch(bm.lang)
	if err != nil {
		return
	}
	old := bm.current
	bm.current = next
	if old.inflight == 0 {
		_ = old.close()
		return
	}
	bm.retired = append(bm.retired, old)
}

// release marks one page of s as done and closes s if it is retired and
// idle.
func (bm *BrowserManager) release(s *session) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	s.inflight--
	if s == bm.current || s.inflight > 0 || bm.closed {
		return
	}
	bm.retired = slices.DeleteFunc(bm.retired, func(r *session) bool { return r == s })
	_ = s.close()
}

// Close shuts down every browser process, including retired ones with
// pages still open. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	var errs []error
	for _, s := range append(bm.retired, bm.current) {
		errs = append(errs, s.close())
	}
	bm.retired = nil
	return errors.Join(errs...)
}

// Processes returns the number of live browser processes.
func (bm *BrowserManager) Processes() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return len(bm.retired) + 1
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.launcher.PID()
}

// launch starts a headless Chrome with flags that keep background tabs
// from being throttled.
func launch(lang string) (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("lang", lang).
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

	return &session{browser: browser, launcher: l}, nil
}

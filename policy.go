package taggin

import (
	"sync"
	"time"
)

// Style is a display-only hint for the console sink. It never affects
// routing or persistence.
type Style struct {
	Color string
	Emoji string
}

// tagPolicy carries everything configured for one tag. lastEmit is owned
// by policyStore and only touched under its lock.
type tagPolicy struct {
	level     *Level
	visible   *bool // forced show/hide, overriding the global visible set
	rateLimit time.Duration
	lastEmit  time.Time
	style     Style
}

// policyStore is the per-logger tag policy table. Policies are created
// lazily on first configuration and live for the logger's lifetime.
type policyStore struct {
	mu              sync.Mutex
	policies        map[string]*tagPolicy
	defaultTagLevel *Level
}

func newPolicyStore() *policyStore {
	return &policyStore{policies: make(map[string]*tagPolicy)}
}

// getLocked returns the policy for tag, creating it if needed. Caller
// holds p.mu.
func (p *policyStore) getLocked(tag string) *tagPolicy {
	pol, ok := p.policies[tag]
	if !ok {
		pol = &tagPolicy{}
		p.policies[tag] = pol
	}
	return pol
}

func (p *policyStore) setLevel(tag string, level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l := level
	p.getLocked(tag).level = &l
}

func (p *policyStore) setRateLimit(tag string, interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getLocked(tag).rateLimit = interval
}

func (p *policyStore) setStyle(tag string, style Style) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getLocked(tag).style = style
}

func (p *policyStore) setVisible(tag string, show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := show
	p.getLocked(tag).visible = &v
}

func (p *policyStore) setDefaultLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l := level
	p.defaultTagLevel = &l
}

// admit decides whether an emission for tag at now passes the tag's rate
// limit and, if so, records it as the last admitted emission. The
// check-then-set is a single critical section: two racing emissions
// inside one interval can never both be admitted.
func (p *policyStore) admit(tag string, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pol, ok := p.policies[tag]
	if !ok || pol.rateLimit <= 0 {
		return true
	}
	if !pol.lastEmit.IsZero() && now.Sub(pol.lastEmit) < pol.rateLimit {
		return false
	}
	pol.lastEmit = now
	return true
}

// effectiveLevel resolves the level a tagged record is stamped with:
// per-tag override, else the process-wide default tag level, else the
// call's own level, else INFO.
func (p *policyStore) effectiveLevel(tag string, call Level, hasCall bool) Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pol, ok := p.policies[tag]; ok && pol.level != nil {
		return *pol.level
	}
	if p.defaultTagLevel != nil {
		return *p.defaultTagLevel
	}
	if hasCall {
		return call
	}
	return LevelInfo
}

// visibility returns the forced show/hide override for tag, if any.
func (p *policyStore) visibility(tag string) (show, forced bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pol, ok := p.policies[tag]; ok && pol.visible != nil {
		return *pol.visible, true
	}
	return false, false
}

func (p *policyStore) styleOf(tag string) Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pol, ok := p.policies[tag]; ok {
		return pol.style
	}
	return Style{}
}

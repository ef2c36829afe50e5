package taggin

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdmitWithoutRateLimit(t *testing.T) {
	p := newPolicyStore()
	now := time.Now()
	assert.True(t, p.admit("A", now))
	assert.True(t, p.admit("A", now))
}

func TestAdmitRateLimitWindow(t *testing.T) {
	p := newPolicyStore()
	p.setRateLimit("TRAIN.START", 500*time.Millisecond)
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	// First emission is always admitted.
	assert.True(t, p.admit("TRAIN.START", t0))
	// 0.2s later: inside the window, suppressed.
	assert.False(t, p.admit("TRAIN.START", t0.Add(200*time.Millisecond)))
	// 0.6s later: admitted, and the window restarts from 0.6s.
	assert.True(t, p.admit("TRAIN.START", t0.Add(600*time.Millisecond)))
	assert.False(t, p.admit("TRAIN.START", t0.Add(1000*time.Millisecond)))
	assert.True(t, p.admit("TRAIN.START", t0.Add(1100*time.Millisecond)))
}

func TestAdmitSuppressedEmissionDoesNotResetWindow(t *testing.T) {
	p := newPolicyStore()
	p.setRateLimit("T", time.Second)
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, p.admit("T", t0))
	assert.False(t, p.admit("T", t0.Add(900*time.Millisecond)))
	// Measured from the admitted emission at t0, not the suppressed one.
	assert.True(t, p.admit("T", t0.Add(1000*time.Millisecond)))
}

func TestAdmitConcurrentSingleWinner(t *testing.T) {
	p := newPolicyStore()
	p.setRateLimit("T", time.Second)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.admit("T", now) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, admitted)
}

func TestEffectiveLevelPrecedence(t *testing.T) {
	p := newPolicyStore()

	// Nothing configured: the call's level wins, INFO with no call level.
	assert.Equal(t, LevelWarning, p.effectiveLevel("A", LevelWarning, true))
	assert.Equal(t, LevelInfo, p.effectiveLevel("A", 0, false))

	p.setDefaultLevel(LevelDebug)
	assert.Equal(t, LevelDebug, p.effectiveLevel("A", LevelWarning, true))

	p.setLevel("A", LevelError)
	assert.Equal(t, LevelError, p.effectiveLevel("A", LevelWarning, true))
	// Other tags still use the default.
	assert.Equal(t, LevelDebug, p.effectiveLevel("B", LevelWarning, true))
}

func TestVisibilityOverride(t *testing.T) {
	p := newPolicyStore()
	_, forced := p.visibility("A")
	assert.False(t, forced)

	p.setVisible("A", true)
	show, forced := p.visibility("A")
	assert.True(t, forced)
	assert.True(t, show)

	p.setVisible("A", false)
	show, forced = p.visibility("A")
	assert.True(t, forced)
	assert.False(t, show)
}

func TestStyleLastWriterWins(t *testing.T) {
	p := newPolicyStore()
	p.setStyle("T", Style{Color: "red", Emoji: "x"})
	p.setStyle("T", Style{Color: "cyan"})
	assert.Equal(t, Style{Color: "cyan"}, p.styleOf("T"))
	assert.Equal(t, Style{}, p.styleOf("other"))
}

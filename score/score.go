// Package score keeps the points and coins of the current run and the session best
package score

import (
	"sync"
)

// Summary is a copy of the keeper state
type Summary struct {
	Points int
	Coins  int
	Score  int // points + coins*CoinValue
	Best   int
	Runs   int
	// Ended is set between OnRunEnded and the next Begin
	Ended bool
}

// Keeper implements motion.ScoreSink and motion.RunEndSink
// Safe for a reader on another goroutine
type Keeper struct {
	mu sync.RWMutex

	coinValue int
	points    int
	coins     int
	best      int
	runs      int
	ended     bool

	onEnd []func(Summary)
}

// NewKeeper creates a keeper crediting coinValue per coin
func NewKeeper(coinValue int) *Keeper {
	return &Keeper{coinValue: coinValue}
}

// OnEnd registers a callback run after every OnRunEnded, outside the lock
func (k *Keeper) OnEnd(fn func(Summary)) {
	k.mu.Lock()
	k.onEnd = append(k.onEnd, fn)
	k.mu.Unlock()
}

// Begin clears the run tally; best and run count survive
func (k *Keeper) Begin() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.points = 0
	k.coins = 0
	k.ended = false
}

func (k *Keeper) AddPoints(n int) {
	if n <= 0 {
		return
	}
	k.mu.Lock()
	k.points += n
	k.mu.Unlock()
}

func (k *Keeper) AddCoins(n int) {
	if n <= 0 {
		return
	}
	k.mu.Lock()
	k.coins += n
	k.mu.Unlock()
}

// OnRunEnded closes the run; finalScore is the controller's distance tally
// and replaces the streamed points so both agree
func (k *Keeper) OnRunEnded(finalScore int) {
	k.mu.Lock()
	if k.ended {
		k.mu.Unlock()
		return
	}
	k.points = finalScore
	k.ended = true
	k.runs++
	if s := k.score(); s > k.best {
		k.best = s
	}
	summary := k.summary()
	callbacks := k.onEnd
	k.mu.Unlock()

	for _, fn := range callbacks {
		fn(summary)
	}
}

// Summary returns a snapshot
func (k *Keeper) Summary() Summary {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.summary()
}

func (k *Keeper) score() int {
	return k.points + k.coins*k.coinValue
}

func (k *Keeper) summary() Summary {
	return Summary{
		Points: k.points,
		Coins:  k.coins,
		Score:  k.score(),
		Best:   k.best,
		Runs:   k.runs,
		Ended:  k.ended,
	}
}

package search

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// aspirationWindow is the initial half-width, in centipawns, of the window
// kept around the previous iteration's score. Root.Search takes no window and
// always searches full width; the window only decides whether an iteration's
// score counts as a miss, in which case the window is doubled and the same
// full-width search is run again, up to maxAspirationAttempts more times.
const aspirationWindow = 25

const maxAspirationAttempts = 4

// timeRate is the divisor driving both the increment and no-information
// branches of Limits (spec.md 4.7).
const timeRate = 20

// TimeControl describes the clocks as reported by a UCI "go" command.
// WhiteInc/BlackInc are the per-move increments (winc/binc); zero if the
// time control has none.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int // movestogo; 0 == rest of the game
}

// Limits returns the soft and hard time budgets for the side to move: after
// the soft limit, no new iteration is started; the hard limit force-stops
// whatever iteration is in flight. inCheck and lastMoveCapture, taken from
// the position the budget is computed for, lower the effective rate (so more
// time is spent) when tactics are in play (spec.md 4.7).
func (t TimeControl) Limits(c board.Color, inCheck, lastMoveCapture bool) (soft, hard time.Duration) {
	remaining, inc := t.White, t.WhiteInc
	if c == board.Black {
		remaining, inc = t.Black, t.BlackInc
	}
	remMS, incMS := ms(remaining), ms(inc)

	rate := float64(timeRate)
	if inCheck {
		rate -= 3
	}
	if lastMoveCapture {
		rate -= 1.5
	}

	var targetMS float64
	switch {
	case incMS > 0:
		if remMS < incMS {
			targetMS = remMS / (rate / 10)
		} else {
			bound := incMS * math.Sqrt(90000/incMS)
			targetMS = math.Max(0.975*incMS+(remMS-bound)/(2*rate), remMS/(10*rate))
		}
	case t.Moves > 0:
		targetMS = math.Min(0.8*remMS/float64(t.Moves), 0.85*remMS)
	default:
		targetMS = remMS / (rate + 5)
	}
	if targetMS < 0 {
		targetMS = 0
	}

	soft = time.Duration(targetMS * float64(time.Millisecond))
	return soft, 3 * soft
}

// ms returns d's length in milliseconds as a float64.
func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1fs<>%.1fs", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1fs<>%.1fs[moves=%d]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// Options hold the dynamic limits for one search.
type Options struct {
	DepthLimit  *int
	TimeControl *TimeControl
}

func (o Options) String() string {
	var parts []string
	if o.DepthLimit != nil {
		parts = append(parts, fmt.Sprintf("depth=%d", *o.DepthLimit))
	}
	if o.TimeControl != nil {
		parts = append(parts, fmt.Sprintf("time=%v", *o.TimeControl))
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// Launcher starts iteratively deepening searches that the engine can stop at
// will. Implementations expect an exclusive board: no concurrent search may
// share it (spec.md 7).
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, tt TranspositionTable, opt Options) (Handle, <-chan PV)
}

// Handle lets the engine halt an in-flight search and retrieve its best PV
// so far. Halt is idempotent.
type Handle interface {
	Halt() PV
}

// Iterative launches Root at increasing depths, each a full-width search
// (see aspirationWindow), until a time or depth limit is reached, a forced
// mate is found, or the engine calls Halt.
type Iterative struct {
	Root Search
}

func NewIterative(root Search) Launcher {
	return &Iterative{Root: root}
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt TranspositionTable, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{quit: make(chan struct{}), init: make(chan struct{})}
	go h.run(ctx, i.Root, b, tt, opt, out)
	return h, out
}

type handle struct {
	init, quit          chan struct{}
	initClosed, done    atomic.Bool

	mu sync.Mutex
	pv PV
}

func (h *handle) run(ctx context.Context, root Search, b *board.Board, tt TranspositionTable, opt Options, out chan PV) {
	defer h.closeInit()
	defer close(out)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-h.quit:
			cancel()
		case <-wctx.Done():
		}
	}()

	sctx := &Context{TT: tt, Killers: NewKillerTable(64), History: NewHistoryTable()}

	soft, useSoft := enforceTimeControl(h, opt.TimeControl, b)

	depth := 1
	alpha, beta := eval.NegInfScore, eval.InfScore
	prev := eval.ZeroScore
	searchStart := time.Now()

	for !h.done.Load() {
		start := time.Now()

		var nodes uint64
		var score eval.Score
		var moves []board.Move
		var err error

		for attempt := 0; ; attempt++ {
			nodes, score, moves, err = root.Search(wctx, sctx, b, depth)
			if err != nil || attempt >= maxAspirationAttempts || (score > alpha && score < beta) {
				break
			}
			// Failed outside the aspiration window: widen and retry.
			width := eval.Score(aspirationWindow << uint(attempt+1))
			if score <= alpha {
				alpha = eval.Max(eval.NegInfScore, prev-width)
			}
			if score >= beta {
				beta = eval.Min(eval.InfScore, prev+width)
			}
		}

		if err != nil {
			if err == ErrHalted {
				return
			}
			logw.Errorf(ctx, "search failed at depth=%d: %v", depth, err)
			return
		}

		prev = score
		alpha = eval.Max(eval.NegInfScore, score-aspirationWindow)
		beta = eval.Min(eval.InfScore, score+aspirationWindow)

		pv := PV{Depth: depth, Nodes: nodes, Score: score, Moves: moves, Time: time.Since(start)}
		if tt != nil {
			pv.Hash = tt.Used()
		}
		logw.Debugf(ctx, "searched %v: %v", b.Position(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv
		h.closeInit()

		if opt.DepthLimit != nil && depth == *opt.DepthLimit {
			return
		}
		if d, ok := score.MateDistance(); ok && d != 0 && abs(d) <= depth {
			return // forced mate found within a full-width search
		}
		if useSoft && soft < time.Since(searchStart) {
			return
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CompareAndSwap(false, true) {
		close(h.quit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) closeInit() {
	if h.initClosed.CompareAndSwap(false, true) {
		close(h.init)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// enforceTimeControl schedules a hard-limit halt and returns the soft limit.
func enforceTimeControl(h Handle, tc *TimeControl, b *board.Board) (time.Duration, bool) {
	if tc == nil {
		return 0, false
	}
	lastMoveCapture := false
	if m, ok := b.LastMove(); ok {
		lastMoveCapture = m.IsCapture()
	}
	soft, hard := tc.Limits(b.Turn(), b.Position().IsChecked(), lastMoveCapture)
	time.AfterFunc(hard, func() { h.Halt() })
	return soft, true
}

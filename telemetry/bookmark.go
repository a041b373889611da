package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkZoomiesOutbreak BookmarkType = "zoomies_outbreak"
	BookmarkMassNap         BookmarkType = "mass_nap"
	BookmarkTowerRecord     BookmarkType = "tower_record"
	BookmarkColonyBoom      BookmarkType = "colony_boom"
	BookmarkSettledColony   BookmarkType = "settled_colony"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects memorable moments in the colony.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []PopulationStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	napping        bool // last window ended in a mass nap
	towerRecord    int  // most cats ever stacked at a window end
	recentCatMin   int  // smallest colony since the last boom
	settledWindows int  // consecutive windows with a steady headcount
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for settled colony detection
	}
	return &BookmarkDetector{
		history:     make([]PopulationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats PopulationStats) []Bookmark {
	var bookmarks []Bookmark

	// Mass nap and tower records need no history.
	if b := bd.checkMassNap(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkTowerRecord(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Zoomies outbreak: catches > 2x rolling average
		if b := bd.checkZoomiesOutbreak(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Colony boom: headcount ≥ 2x recent minimum
		if b := bd.checkColonyBoom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Settled colony: steady headcount over 5 windows
		if b := bd.checkSettledColony(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Update history
	bd.addToHistory(stats)

	if stats.Cats < bd.recentCatMin || bd.recentCatMin == 0 {
		bd.recentCatMin = stats.Cats
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats PopulationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []PopulationStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	n = min(n, count)
	out := make([]PopulationStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkZoomiesOutbreak(stats PopulationStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ZoomiesIn
	}
	avg := float64(total) / float64(len(history))

	if stats.ZoomiesIn >= 3 && float64(stats.ZoomiesIn) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkZoomiesOutbreak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d cats caught the zoomies (average %.1f)", stats.ZoomiesIn, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkMassNap(stats PopulationStats) *Bookmark {
	napping := stats.Cats >= 5 && float64(stats.Sleeping) >= 0.6*float64(stats.Cats)
	wasNapping := bd.napping
	bd.napping = napping
	if !napping || wasNapping {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkMassNap,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d cats asleep", stats.Sleeping, stats.Cats),
	}
}

func (bd *BookmarkDetector) checkTowerRecord(stats PopulationStats) *Bookmark {
	if stats.Stacked <= bd.towerRecord {
		return nil
	}
	old := bd.towerRecord
	bd.towerRecord = stats.Stacked
	if stats.Stacked < 2 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkTowerRecord,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d cats stacked at once (previous best %d)", stats.Stacked, old),
	}
}

func (bd *BookmarkDetector) checkColonyBoom(stats PopulationStats) *Bookmark {
	if bd.recentCatMin == 0 {
		return nil
	}

	if stats.Cats >= bd.recentCatMin*2 && stats.Cats >= bd.recentCatMin+10 {
		// Reset the minimum after triggering
		oldMin := bd.recentCatMin
		bd.recentCatMin = stats.Cats

		return &Bookmark{
			Type:        BookmarkColonyBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Colony grew from %d to %d cats", oldMin, stats.Cats),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSettledColony(stats PopulationStats) *Bookmark {
	if stats.Cats < 5 {
		bd.settledWindows = 0
		return nil
	}

	history := bd.recent(4)
	if len(history) < 4 {
		return nil
	}

	counts := make([]float64, len(history))
	for i, h := range history {
		counts[i] = float64(h.Cats)
	}
	mean, variance := stat.PopMeanVariance(counts, nil)

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.settledWindows++
	} else {
		bd.settledWindows = 0
	}

	if bd.settledWindows == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkSettledColony,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Colony settled at %d cats over 5+ windows", stats.Cats),
		}
	}

	return nil
}

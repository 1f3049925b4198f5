package weiqi

import (
	"log"
	"math/rand"
	"os"
)

// Tunable constants, reference values from spec.md §9. All are overridable
// through Config for experimentation; these are only the defaults
// NewConfig fills in.
const (
	DefaultBoardSize     = 13
	DefaultKomi          = 7.5
	DefaultExpandVisits  = 8
	DefaultNSims         = 1400
	DefaultRaveEquiv     = 3500.0
	DefaultReportPeriod  = 200

	PriorEven         = 10
	PriorSelfatari    = 10
	PriorCaptureOne   = 15
	PriorCaptureMany  = 30
	PriorPat3         = 10
	PriorLargePattern = 100
	PriorEmptyArea    = 10

	ProbCapture  = 0.9
	ProbPat3     = 0.95
	ProbRSAReject = 0.5
	ProbSSAReject = 0.9

	FastPlay5Thres  = 0.95
	FastPlay20Thres = 0.75
	ResignThres     = 0.2
)

// PriorCFG gives the priors for moves at common-fate-graph distance
// 1, 2, 3 from the last move.
var PriorCFG = [3]float64{24, 22, 8}

// PlayoutProbs bundles the "do we even try this heuristic this playout"
// probabilities gen_playout_moves consults.
type PlayoutProbs struct {
	Capture float64
	Pat3    float64
}

// DefaultPlayoutProbs matches spec.md's representative PROB_HEURISTIC.
func DefaultPlayoutProbs() PlayoutProbs {
	return PlayoutProbs{Capture: ProbCapture, Pat3: ProbPat3}
}

// Config bundles everything a search needs to run: board size, komi,
// simulation budget, worker count, the RNG each worker is seeded from, a
// logger for progress reports, and the (possibly empty) pattern stores.
// Constructed once per engine instance, following the teacher's
// Config/NewConfiguredRobot idiom.
type Config struct {
	BoardSize    int
	Komi         float64
	NSims        int
	ExpandVisits int
	RaveEquiv    float64
	Workers      int
	ReportPeriod int
	Probs        PlayoutProbs
	Log          *log.Logger
	Rand         *rand.Rand
	Patterns     *PatternStores
	Pat3         Pat3Set
}

// NewConfig returns a Config with spec.md's reference defaults.
func NewConfig() *Config {
	return &Config{
		BoardSize:    DefaultBoardSize,
		Komi:         DefaultKomi,
		NSims:        DefaultNSims,
		ExpandVisits: DefaultExpandVisits,
		RaveEquiv:    DefaultRaveEquiv,
		Workers:      4,
		ReportPeriod: DefaultReportPeriod,
		Probs:        DefaultPlayoutProbs(),
		Log:          log.New(os.Stderr, "", log.LstdFlags),
		Rand:         rand.New(rand.NewSource(1)),
		Patterns:     NewPatternStores(),
		Pat3:         NewPat3Set(),
	}
}

// Validate reports whether the config's numeric fields are usable.
func (c *Config) Validate() bool {
	return c.BoardSize > 0 && c.NSims > 0 && c.ExpandVisits > 0 && c.Workers > 0
}

// Engine bundles a Config with a long-lived game tree root. The GTP and
// console frontends do not use it; each keeps its own root node.
type Engine struct {
	Config *Config
	Root   *TreeNode
}

// NewEngine returns an engine with a fresh empty board and an expanded
// root node, ready to search.
func NewEngine(cfg *Config) *Engine {
	root := NewTreeNode(NewEmptyPosition(cfg.BoardSize, cfg.Komi))
	root.Expand(cfg)
	return &Engine{Config: cfg, Root: root}
}

package weiqi

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// PatternStores holds the two large-scale pattern tables: a spatial
// dictionary mapping a hashed gridcular neighborhood string to a pattern
// id, and a probability table mapping a pattern id to the move-selection
// weight observed for it in game records. Both are optional; an engine with
// empty stores still plays, just with weaker move priors (spec.md §4.3).
type PatternStores struct {
	spatial map[uint64]int64
	probs   map[int64]float64
}

// NewPatternStores returns empty stores.
func NewPatternStores() *PatternStores {
	return &PatternStores{
		spatial: map[uint64]int64{},
		probs:   map[int64]float64{},
	}
}

// hashNeighborhood computes the stable 64-bit hash used both when loading
// the spatial dictionary and when looking a neighborhood string up, so the
// two always agree regardless of Go's randomized map/string hashing.
func hashNeighborhood(s string) uint64 {
	return xxhash.Sum64String(s)
}

// LoadSpatialDict reads the "patterns.spat" format: whitespace-separated
// fields where field 0 is the pattern id and field 2 is a neighborhood
// preview string using '#' for off-board and 'O' for the opponent color.
// Malformed lines are collected, not fatal: the rest of the file still
// loads.
func (s *PatternStores) LoadSpatialDict(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var errs *multierror.Error
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			errs = multierror.Append(errs, errors.Errorf("spatial dict line %d: need at least 3 fields, got %d", lineNo, len(fields)))
			continue
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "spatial dict line %d: bad pattern id %q", lineNo, fields[0]))
			continue
		}
		neighborhood := strings.NewReplacer("#", " ", "O", "x").Replace(fields[2])
		s.spatial[hashNeighborhood(neighborhood)] = id
	}
	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "reading spatial dict"))
	}
	if errs != nil {
		return errs.ErrorOrNil()
	}
	return nil
}

// LoadProbabilities reads the "patterns.prob" format: lines like
// "0.004 14 3842 (capture:17 border:0 s:784)" where field 0 is the
// probability and the parenthesized "s:N" feature is the pattern id this
// probability applies to. Other parenthesized features are ignored.
func (s *PatternStores) LoadProbabilities(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var errs *multierror.Error
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		p, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "probability line %d: bad probability %q", lineNo, fields[0]))
			continue
		}
		id, ok := extractSpatialID(line)
		if !ok {
			errs = multierror.Append(errs, errors.Errorf("probability line %d: no s:<id> feature found", lineNo))
			continue
		}
		s.probs[id] = p
	}
	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "reading probabilities"))
	}
	if errs != nil {
		return errs.ErrorOrNil()
	}
	return nil
}

func extractSpatialID(line string) (int64, bool) {
	idx := strings.Index(line, "s:")
	if idx == -1 {
		return 0, false
	}
	rest := line[idx+2:]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// LargePatternProbability returns the probability of the largest-diameter
// large-scale pattern matching coordinate c on board b, or false if no
// pattern in the store matches at all (an empty store always misses).
//
// spec.md §9 flags the reference engine's own early-stop condition here as
// ambiguous (it can fire inconsistently across symmetries); this resolves
// it the way the spec's design notes suggest: walk shells in strictly
// increasing diameter, remember the best probability seen so far, and stop
// only once an entire diameter (all 8 symmetries) has failed to match.
func (s *PatternStores) LargePatternProbability(b Board, c Coord) (float64, bool) {
	if len(s.spatial) == 0 {
		return 0, false
	}
	var (
		probability     float64
		matched         bool
		diameterMatched bool
	)
	curLen := -1
	for n := range b.NeighborhoodGridcular(c) {
		if len(n) != curLen {
			if curLen >= 0 && !diameterMatched {
				break
			}
			curLen = len(n)
			diameterMatched = false
		}
		if id, ok := s.spatial[hashNeighborhood(n)]; ok {
			if p, ok := s.probs[id]; ok {
				probability = p
				matched = true
				diameterMatched = true
			}
		}
	}
	return probability, matched
}

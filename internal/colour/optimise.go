package colour

import (
	"fmt"
	"math"
)

// Mode controls how much perceptual change the optimiser may spend in
// exchange for a better chance of reaching the contrast target.
type Mode int

const (
	// ModeStrict permits only small corrections (Delta E <= 5.0) in a single
	// pass and fails fast, preserving brand fidelity over success rate.
	ModeStrict Mode = iota
	// ModeDefault applies repeated bounded corrections, each small on its
	// own, compounding from the previous result. The cumulative change from
	// the true original is tracked and capped.
	ModeDefault
	// ModeRelaxed behaves like ModeDefault but falls back to an extended
	// budget ladder (Delta E up to 15.0) when the iterative strategy fails.
	ModeRelaxed
)

// ParseMode parses a mode name as used on the command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict":
		return ModeStrict, nil
	case "default", "":
		return ModeDefault, nil
	case "relaxed":
		return ModeRelaxed, nil
	default:
		return ModeDefault, fmt.Errorf("unknown mode %q (expected strict, default or relaxed)", s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeRelaxed:
		return "relaxed"
	default:
		return "default"
	}
}

// MaxDeltaE returns the largest perceptual change the mode is allowed to
// report on a successful tune.
func (m Mode) MaxDeltaE() float64 {
	switch m {
	case ModeStrict:
		return strictBudgets[len(strictBudgets)-1]
	default:
		return iterativeMaxTotalDeltaE
	}
}

// Search parameters. These are deliberate, documented choices rather than
// hidden magic numbers; tests exercise them directly.
const (
	// binarySearchIterations bounds the lightness bisection. 20 halvings of
	// the [0, 1] interval resolve lightness to about six decimal digits.
	binarySearchIterations = 20

	// descentMaxIterations bounds the joint lightness/chroma descent.
	descentMaxIterations = 50

	// descentLearningRate is the initial step scale for gradient descent,
	// decayed by descentDecay every ten iterations.
	descentLearningRate = 0.02
	descentDecay        = 0.95

	// gradientStep is the central-difference step used for the numeric
	// gradient of the descent loss.
	gradientStep = 1e-4

	// descentMaxChroma caps chroma during descent so the search cannot
	// wander far outside the sRGB gamut.
	descentMaxChroma = 0.5

	// descentConvergence stops the descent once the loss stops moving.
	descentConvergence = 1e-6

	// iterativeMaxSteps bounds the compounding correction loop in default
	// and relaxed modes.
	iterativeMaxSteps = 6

	// iterativeMaxTotalDeltaE caps the cumulative perceptual change from
	// the true original across all compounding steps.
	iterativeMaxTotalDeltaE = 15.0
)

// Budget ladders, ascending so that the first success is the
// minimal-perceptual-change solution found.
var (
	// strictBudgets is the single-pass ladder shared by all modes.
	strictBudgets = []float64{0.8, 1.5, 2.3, 3.5, 5.0}

	// stepBudgets is the per-step ladder for the compounding strategy. Each
	// step is at most 3.0 Delta E from its own starting point.
	stepBudgets = []float64{0.8, 1.2, 1.6, 2.0, 2.4, 3.0}

	// relaxedBudgets extends the strict ladder for the relaxed fallback.
	relaxedBudgets = []float64{0.8, 1.5, 2.3, 3.5, 5.0, 7.0, 10.0, 15.0}
)

// candidate is an optimiser result: a colour, its perceptual distance from
// the colour the search started at, the contrast it achieves against the
// background, and whether it meets the target ratio.
type candidate struct {
	rgb    RGB
	deltaE float64
	ratio  float64
	met    bool
}

// searchLightness binary-searches the lightness channel for the smallest
// adjustment that reaches the target contrast while staying within the
// Delta E budget. The search direction depends on the background: text is
// lightened over dark backgrounds and darkened over light ones.
//
// When the target is unreachable within the budget the best in-budget
// improvement found is returned with met=false, which the compounding
// strategy uses as its next starting point.
func searchLightness(from, bg RGB, budget, target float64) candidate {
	lch := RGBToLCH(from)
	searchUp := RGBToLCH(bg).L < 0.5

	low, high := 0.0, lch.L
	if searchUp {
		low, high = lch.L, 1.0
	}

	best := candidate{rgb: from, ratio: ContrastRatio(from, bg)}

	for i := 0; i < binarySearchIterations; i++ {
		mid := (low + high) / 2
		cand := LCHToRGB(LCH{L: mid, C: lch.C, H: lch.H})
		deltaE := DeltaE2000(from, cand)

		// Over budget: pull back towards the original.
		if deltaE > budget {
			if searchUp {
				high = mid
			} else {
				low = mid
			}
			continue
		}

		ratio := ContrastRatio(cand, bg)
		if ratio >= target {
			if !best.met || deltaE < best.deltaE {
				best = candidate{rgb: cand, deltaE: deltaE, ratio: ratio, met: true}
			}
			// Feasible: try to shrink the change further.
			if searchUp {
				high = mid
			} else {
				low = mid
			}
		} else {
			// Infeasible: push further from the original.
			if searchUp {
				low = mid
			} else {
				high = mid
			}
			if !best.met && ratio > best.ratio {
				best = candidate{rgb: cand, deltaE: deltaE, ratio: ratio}
			}
		}
	}

	return best
}

// gradientDescent jointly adjusts lightness and chroma from the original
// colour, minimising a loss that combines the shortfall below the target
// contrast with the perceptual distance spent. The gradient is numeric
// (central differences); the learning rate decays on a fixed schedule.
//
// Returns the final candidate and true only when it both meets the target
// and stays within the Delta E budget.
func gradientDescent(from, bg RGB, budget, target float64) (candidate, bool) {
	lch := RGBToLCH(from)

	cost := func(l, c float64) float64 {
		l = clamp01(l)
		c = math.Max(0, math.Min(descentMaxChroma, c))

		cand := LCHToRGB(LCH{L: l, C: c, H: lch.H})
		deltaE := DeltaE2000(from, cand)
		ratio := ContrastRatio(cand, bg)

		contrastPenalty := math.Max(0, target-ratio) * 1000
		budgetPenalty := math.Max(0, deltaE-budget) * 10000
		distancePenalty := deltaE * 100

		return contrastPenalty + budgetPenalty + distancePenalty
	}

	l, c := lch.L, lch.C
	for i := 0; i < descentMaxIterations; i++ {
		gradL := (cost(l+gradientStep, c) - cost(l-gradientStep, c)) / (2 * gradientStep)
		gradC := (cost(l, c+gradientStep) - cost(l, c-gradientStep)) / (2 * gradientStep)

		rate := descentLearningRate * math.Pow(descentDecay, float64(i/10))

		nextL := clamp01(l - rate*gradL)
		nextC := math.Max(0, math.Min(descentMaxChroma, c-rate*gradC))

		if math.Abs(cost(l, c)-cost(nextL, nextC)) < descentConvergence {
			break
		}
		l, c = nextL, nextC
	}

	rgb := LCHToRGB(LCH{L: l, C: c, H: lch.H})
	deltaE := DeltaE2000(from, rgb)
	ratio := ContrastRatio(rgb, bg)

	if deltaE <= budget && ratio >= target {
		return candidate{rgb: rgb, deltaE: deltaE, ratio: ratio, met: true}, true
	}
	return candidate{}, false
}

// optimisePass runs the two search phases under each budget of an ascending
// ladder and returns the first feasible candidate, so the result is the
// minimal-change solution the ladder admits. With no feasible candidate the
// best in-budget contrast improvement is returned with met=false.
func optimisePass(from, bg RGB, target float64, budgets []float64) candidate {
	best := candidate{rgb: from, ratio: ContrastRatio(from, bg)}

	for _, budget := range budgets {
		c := searchLightness(from, bg, budget, target)
		if c.met {
			return c
		}
		if c.ratio > best.ratio {
			best = c
		}

		if g, ok := gradientDescent(from, bg, budget, target); ok {
			return g
		}
	}

	return best
}

// iterativeState carries the compounding-correction accumulator: the
// current position, its cumulative perceptual distance from the true
// original, and the number of steps taken. An explicit struct keeps the
// loop's termination bounds auditable.
type iterativeState struct {
	current    RGB
	cumulative float64
	steps      int
}

// optimiseIterative applies repeated bounded corrections: each step runs the
// ladder from the current position with a small per-step budget, then the
// next step compounds from wherever that landed. This explores a much larger
// search space than a single jump while every individual change stays barely
// noticeable. The cumulative Delta E from the true original is measured
// directly (the formula is not additive) and capped.
func optimiseIterative(text, bg RGB, target float64) candidate {
	state := iterativeState{current: text}

	for state.steps < iterativeMaxSteps {
		c := optimisePass(state.current, bg, target, stepBudgets)
		if c.rgb == state.current {
			break // no progress left within the step budget
		}

		cumulative := DeltaE2000(text, c.rgb)
		if cumulative > iterativeMaxTotalDeltaE {
			break // out of allowance
		}

		state.current = c.rgb
		state.cumulative = cumulative
		state.steps++

		if c.met {
			return candidate{rgb: c.rgb, deltaE: cumulative, ratio: c.ratio, met: true}
		}
	}

	return candidate{
		rgb:    state.current,
		deltaE: state.cumulative,
		ratio:  ContrastRatio(state.current, bg),
	}
}

// optimise dispatches on the mode policy. Strict runs the small single-pass
// ladder only. Default tries the strict ladder first (its successes are
// always minimal-change) and then the compounding strategy, so relaxing the
// mode never loses a solution. Relaxed adds the extended ladder as a final
// fallback.
func optimise(text, bg RGB, target float64, mode Mode) candidate {
	strict := optimisePass(text, bg, target, strictBudgets)
	if strict.met || mode == ModeStrict {
		return strict
	}

	iter := optimiseIterative(text, bg, target)
	if iter.met || mode == ModeDefault {
		return iter
	}

	relaxed := optimisePass(text, bg, target, relaxedBudgets)
	if relaxed.met {
		return relaxed
	}

	// Nothing succeeded: report whichever attempt got closest.
	best := strict
	for _, c := range []candidate{iter, relaxed} {
		if c.ratio > best.ratio {
			best = c
		}
	}
	return best
}

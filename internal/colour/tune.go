package colour

// Status describes the outcome of a tuning call.
type Status int

const (
	// StatusAlreadyPasses means the original pair met the target and was
	// returned untouched.
	StatusAlreadyPasses Status = iota
	// StatusPassesAA means the tuned pair meets the AA thresholds.
	StatusPassesAA
	// StatusPassesAAA means the tuned pair meets the AAA thresholds.
	StatusPassesAAA
	// StatusFailed means no candidate reached the target within the mode's
	// Delta E allowance; the result carries the best effort found.
	StatusFailed
)

// String returns a short status name.
func (s Status) String() string {
	switch s {
	case StatusAlreadyPasses:
		return "already-passes"
	case StatusPassesAA:
		return "passes-aa"
	case StatusPassesAAA:
		return "passes-aaa"
	default:
		return "failed"
	}
}

// Passed reports whether the status represents a pair that meets its target.
func (s Status) Passed() bool {
	return s != StatusFailed
}

// Options control a tuning call. The zero value requests normal-size text at
// the AA target in default mode.
type Options struct {
	// LargeText applies the WCAG large-text thresholds (3.0 / 4.5 instead
	// of 4.5 / 7.0).
	LargeText bool
	// Premium raises the target from the AA thresholds to AAA.
	Premium bool
	// Mode selects the perceptual-change policy.
	Mode Mode
}

// Result is the outcome of tuning one text/background pair. The background
// is never modified; only the text colour moves.
type Result struct {
	// Original is the text colour as supplied.
	Original RGB `json:"original"`
	// Background is the fixed background colour.
	Background RGB `json:"background"`
	// Tuned is the adjusted text colour (equal to Original when no change
	// was needed or possible).
	Tuned RGB `json:"tuned"`
	// DeltaE is the perceptual difference between Original and Tuned.
	DeltaE float64 `json:"delta_e"`
	// OriginalRatio is the contrast ratio of Original against Background.
	OriginalRatio float64 `json:"original_ratio"`
	// Ratio is the contrast ratio of Tuned against Background.
	Ratio float64 `json:"ratio"`
	// OriginalLevel is the WCAG conformance level of the pair as supplied.
	OriginalLevel Level `json:"original_level"`
	// Level is the WCAG conformance level of the final pair.
	Level Level `json:"level"`
	// Status describes how the result was reached.
	Status Status `json:"status"`
}

// Tune adjusts a text colour until it meets the WCAG contrast target against
// the background, changing it as little as perceptually possible.
//
// A pair that already meets the target is returned unchanged with
// StatusAlreadyPasses; no search runs, so tuning is idempotent. Failure to
// reach the target is a normal outcome, reported via StatusFailed alongside
// the closest candidate found, never as an error: the search is bounded by
// fixed iteration caps and never rejects well-formed input.
func Tune(text, bg RGB, opts Options) Result {
	ratio := ContrastRatio(text, bg)
	target := Target(opts.LargeText, opts.Premium)
	originalLevel := Classify(ratio, opts.LargeText)

	if ratio >= target {
		return Result{
			Original:      text,
			Background:    bg,
			Tuned:         text,
			OriginalRatio: ratio,
			Ratio:         ratio,
			OriginalLevel: originalLevel,
			Level:         originalLevel,
			Status:        StatusAlreadyPasses,
		}
	}

	cand := optimise(text, bg, target, opts.Mode)
	level := Classify(cand.ratio, opts.LargeText)

	status := StatusFailed
	if cand.met {
		if level == LevelAAA {
			status = StatusPassesAAA
		} else {
			status = StatusPassesAA
		}
	}

	return Result{
		Original:      text,
		Background:    bg,
		Tuned:         cand.rgb,
		DeltaE:        cand.deltaE,
		OriginalRatio: ratio,
		Ratio:         cand.ratio,
		OriginalLevel: originalLevel,
		Level:         level,
		Status:        status,
	}
}

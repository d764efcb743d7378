package morse

// Classification is the timing classifier's verdict for one edge
// duration.
type Classification int

const (
	ClassDit Classification = iota
	ClassDah
	ClassIntraGap
	ClassCharGap
	ClassWordGap
	ClassUnknown
)

func (c Classification) String() string {
	switch c {
	case ClassDit:
		return "dit"
	case ClassDah:
		return "dah"
	case ClassIntraGap:
		return "intra_gap"
	case ClassCharGap:
		return "char_gap"
	case ClassWordGap:
		return "word_gap"
	default:
		return "unknown"
	}
}

const (
	minDurationUs = 5_000
	maxDurationUs = 5_000_000

	defaultTolerancePercent = 25
	defaultAlpha            = 0.3
	defaultWarmup           = 3

	// Bootstrap averages correspond to 20 WPM, used until the
	// classifier has seen enough marks to have adapted.
	defaultDitAvgUs = 60_000.0
	defaultDahAvgUs = 180_000.0
)

// Classifier is an EMA-adaptive dit/dah/space classifier (C6).
type Classifier struct {
	ditAvgUs, dahAvgUs float64
	ditCount, dahCount int
	warmup             int
	tolerancePercent   float64
	alpha              float64
}

// NewClassifier constructs a Classifier with spec.md's default
// tolerance (25%) and EMA alpha (0.3), bootstrapped at 20 WPM.
func NewClassifier() *Classifier {
	return &Classifier{
		ditAvgUs:         defaultDitAvgUs,
		dahAvgUs:         defaultDahAvgUs,
		warmup:           defaultWarmup,
		tolerancePercent: defaultTolerancePercent,
		alpha:            defaultAlpha,
	}
}

// Classify classifies one edge of durationUs, which is a mark
// (key-down) when isMark is true, a space otherwise. Durations
// outside [5ms, 5s] are reported as ClassUnknown and never update
// internal state. Mark classification updates whichever of ditAvgUs /
// dahAvgUs matched; space classification never updates state.
func (c *Classifier) Classify(durationUs int64, isMark bool) Classification {
	if durationUs < minDurationUs || durationUs > maxDurationUs {
		return ClassUnknown
	}
	if isMark {
		threshold := (3*c.ditAvgUs + c.dahAvgUs) / 4 * (1 + c.tolerancePercent/100)
		d := float64(durationUs)
		if d < threshold {
			c.ditAvgUs = c.alpha*d + (1-c.alpha)*c.ditAvgUs
			c.ditCount++
			c.decrementWarmup()
			return ClassDit
		}
		c.dahAvgUs = c.alpha*d + (1-c.alpha)*c.dahAvgUs
		c.dahCount++
		c.decrementWarmup()
		return ClassDah
	}
	switch {
	case durationUs < int64(2*c.ditAvgUs):
		return ClassIntraGap
	case durationUs < int64(5*c.ditAvgUs):
		return ClassCharGap
	default:
		return ClassWordGap
	}
}

func (c *Classifier) decrementWarmup() {
	if c.warmup > 0 {
		c.warmup--
	}
}

// WPM returns the classifier's current speed estimate, or 0 while
// still in warmup.
func (c *Classifier) WPM() float64 {
	if c.warmup > 0 {
		return 0
	}
	return 1_200_000 / c.ditAvgUs
}

// DitDahRatio returns dahAvgUs/ditAvgUs for diagnostics; the ideal
// value is 3.0.
func (c *Classifier) DitDahRatio() float64 {
	if c.ditAvgUs == 0 {
		return 0
	}
	return c.dahAvgUs / c.ditAvgUs
}

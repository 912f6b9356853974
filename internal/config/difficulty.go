package config

// Escalation tracks the one-shot speed-up of a run.
// It fires the first time the score reaches the threshold on an exact
// multiple of Every, and never again until Reset.
type Escalation struct {
	cfg   EscalationConfig
	fired bool
}

// NewEscalation creates a tracker for one run.
func NewEscalation(cfg EscalationConfig) *Escalation {
	return &Escalation{cfg: cfg}
}

// Reset re-arms the tracker for a new run.
func (e *Escalation) Reset() {
	e.fired = false
}

// Fired reports whether the escalation already happened this run.
func (e *Escalation) Fired() bool {
	return e.fired
}

// Check returns the factor to apply and true exactly once per run, on the
// first call whose score qualifies.
func (e *Escalation) Check(score int) (float64, bool) {
	if e.fired || !e.cfg.Enabled || e.cfg.Every <= 0 {
		return 1, false
	}
	if score < e.cfg.Threshold || score%e.cfg.Every != 0 {
		return 1, false
	}
	e.fired = true
	return e.cfg.Factor, true
}

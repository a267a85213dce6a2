package detection

import (
	"context"
	"time"

	"aidetector/internal/core/textnorm"
)

// DefaultMinLength is the shortest text, in runes, worth classifying
const DefaultMinLength = 50

// Stage is a pipeline state
type Stage string

// Stages in order; a run ends in Completed or Failed
const (
	StageIdle        Stage = "idle"
	StageValidating  Stage = "validating"
	StageDispatching Stage = "dispatching"
	StageNormalizing Stage = "normalizing"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// Transition is reported to the Observer on every stage change
type Transition struct {
	From, To Stage
	Model    string
	Err      error         // set when To is StageFailed
	Elapsed  time.Duration // since the run started
}

// Observer sees each transition; it must not block
type Observer func(ctx context.Context, t Transition)

// Pipeline runs one detection per call and is safe for concurrent use
type Pipeline struct {
	c         Classifier
	minLength int
	observe   Observer
	now       func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithMinLength overrides DefaultMinLength; values below 1 are ignored
func WithMinLength(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.minLength = n
		}
	}
}

// WithObserver registers o
func WithObserver(o Observer) Option { return func(p *Pipeline) { p.observe = o } }

// NewPipeline binds the deployment's one classifier
func NewPipeline(c Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{c: c, minLength: DefaultMinLength, now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Model names the bound backend
func (p *Pipeline) Model() string { return p.c.Model() }

// MinLength is the validation threshold in runes
func (p *Pipeline) MinLength() int { return p.minLength }

// Validate checks text without running the backend
func (p *Pipeline) Validate(text string) error {
	if textnorm.Blank(text) || textnorm.RuneLen(text) < p.minLength {
		return ErrTooShort(p.minLength)
	}
	return nil
}

// Run validates text, dispatches it and normalizes the answer
// Errors are perr coded: validation, timeout, unavailable or upstream
func (p *Pipeline) Run(ctx context.Context, text string) (Result, error) {
	run := runState{p: p, ctx: ctx, at: StageIdle, start: p.now()}

	run.to(StageValidating, nil)
	if err := p.Validate(text); err != nil {
		return Result{}, run.fail(err)
	}

	run.to(StageDispatching, nil)
	labels, err := p.c.Classify(ctx, textnorm.Sanitize(text))
	if err != nil {
		return Result{}, run.fail(classify(err))
	}

	run.to(StageNormalizing, nil)
	prob := Probability(labels)
	res := Result{
		AIProbability: prob,
		Confidence:    ConfidenceFor(prob),
		Assessment:    AssessmentFor(prob),
		TextLength:    textnorm.RuneLen(text),
		Model:         p.c.Model(),
	}
	run.to(StageCompleted, nil)
	return res, nil
}

type runState struct {
	p     *Pipeline
	ctx   context.Context
	at    Stage
	start time.Time
}

func (r *runState) to(s Stage, err error) {
	if r.p.observe != nil {
		r.p.observe(r.ctx, Transition{
			From:    r.at,
			To:      s,
			Model:   r.p.c.Model(),
			Err:     err,
			Elapsed: r.p.now().Sub(r.start),
		})
	}
	r.at = s
}

func (r *runState) fail(err error) error {
	r.to(StageFailed, err)
	return err
}

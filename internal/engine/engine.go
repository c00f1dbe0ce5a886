package engine

import (
	"io"
	"iter"
	"log/slog"
	"math"
	"slices"

	"github.com/roach88/sigprobe/internal/assemble"
	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/surface"
	"github.com/roach88/sigprobe/internal/validate"
)

// Engine runs discovery over a registry of owner surfaces.
//
// INVARIANTS:
//   - owners are visited in catalog order
//   - operations are visited sorted, instance mode before static mode
//   - tuples are visited in Combinations order
type Engine struct {
	registry  *surface.Registry
	profile   ir.Profile
	owners    []catalog.Type
	types     []catalog.Type
	enum      *surface.Enumerator
	validator *validate.Validator
	clock     *Clock
	wall      WallClock
	runIDs    RunIDGenerator
	logger    *slog.Logger
	factory   validate.Factory
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The validator logs through it too.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithWallClock sets the source of GeneratedAt.
func WithWallClock(c WallClock) Option {
	return func(e *Engine) { e.wall = c }
}

// WithRunIDGenerator sets the run id generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) { e.runIDs = g }
}

// WithClock sets the logical attempt clock.
func WithClock(c *Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithFactory replaces the instance factory handed to the validator.
func WithFactory(f validate.Factory) Option {
	return func(e *Engine) { e.factory = f }
}

// New creates an Engine for registry configured by profile.
//
// An empty profile.Owners means every registered owner. Named owners are
// still visited in catalog order. Returns a *ConfigError when the profile
// names an unregistered owner or carries an out-of-range arity or
// tolerance.
func New(registry *surface.Registry, profile ir.Profile, opts ...Option) (*Engine, error) {
	if profile.MaxArity < 0 || profile.MaxArity > ir.MaxArityLimit {
		return nil, newArityError(profile.MaxArity, ir.MaxArityLimit)
	}
	if math.IsNaN(profile.Tolerance) || math.IsInf(profile.Tolerance, 0) || profile.Tolerance <= 0 {
		return nil, newToleranceError(profile.Tolerance)
	}

	owners := registry.Owners()
	if len(profile.Owners) > 0 {
		for _, o := range profile.Owners {
			if _, ok := registry.Lookup(o); !ok {
				return nil, newUnknownOwnerError(o.String())
			}
		}
		owners = slices.DeleteFunc(owners, func(t catalog.Type) bool {
			return !slices.Contains(profile.Owners, t)
		})
	}

	e := &Engine{
		registry: registry,
		profile:  profile,
		owners:   owners,
		types:    catalog.All(),
		enum:     surface.NewEnumerator(profile.Deny...),
		clock:    NewClock(),
		wall:     SystemClock{},
		runIDs:   UUIDv7Generator{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	vopts := []validate.Option{
		validate.WithTolerance(profile.Tolerance),
		validate.WithLogger(e.logger),
	}
	if e.factory != nil {
		vopts = append(vopts, validate.WithFactory(e.factory))
	}
	e.validator = validate.New(registry, vopts...)

	return e, nil
}

// Owners returns the owner types this engine will visit.
func (e *Engine) Owners() []catalog.Type {
	return slices.Clone(e.owners)
}

// Operations lists the enumerated instance and static operations of owner
// under this engine's denylist.
func (e *Engine) Operations(owner catalog.Type) (methods, statics []string) {
	s, ok := e.registry.Lookup(owner)
	if !ok {
		return []string{}, []string{}
	}
	return e.enum.Methods(s), e.enum.Statics(s)
}

// Run performs one discovery pass and returns the assembled database with
// the run's counters. Run never fails; an owner whose every candidate is
// rejected simply contributes no signatures.
func (e *Engine) Run() (*ir.EquationDatabase, ir.RunSummary) {
	summary := ir.RunSummary{
		RunID:    e.runIDs.Generate(),
		Rejected: make(map[string]int),
	}
	asm := assemble.New()

	e.logger.Info("discovery starting",
		"run_id", summary.RunID,
		"owners", len(e.owners),
		"max_arity", e.profile.MaxArity)

	for _, owner := range e.owners {
		methods, statics := e.Operations(owner)
		summary.Owners++
		before := asm.Len()

		for _, op := range methods {
			summary.Operations++
			e.search(asm, &summary, owner, op, false)
		}
		for _, op := range statics {
			summary.Operations++
			e.search(asm, &summary, owner, op, true)
		}

		e.logger.Info("owner done",
			"owner", owner.String(),
			"methods", len(methods),
			"statics", len(statics),
			"signatures", asm.Len()-before)
	}

	db := asm.Database(e.profile.Source, e.wall.Now())

	e.logger.Info("discovery complete",
		"run_id", summary.RunID,
		"attempts", summary.Attempts,
		"accepted", summary.Accepted)

	return db, summary
}

// search walks arity levels for one (owner, operation, mode) and stops
// after the first level with an accepted signature.
func (e *Engine) search(asm *assemble.Assembler, summary *ir.RunSummary, owner catalog.Type, op string, static bool) {
	for n := 0; n <= e.profile.MaxArity; n++ {
		accepted := false
		for params := range e.tuples(owner, n, static) {
			c := ir.CandidateSignature{
				Owner:     owner,
				Operation: op,
				Params:    params,
				Static:    static,
			}

			seq := e.clock.Next()
			summary.Attempts++

			sig, err := e.validator.Validate(c)
			if err != nil {
				summary.Rejected[string(validate.ReasonOf(err))]++
				continue
			}

			accepted = true
			summary.Accepted++
			asm.Add(sig)
			e.logger.Info("signature accepted",
				"seq", seq,
				"signature", sig.String())
		}
		if accepted {
			return
		}
	}
}

// tuples yields the parameter tuples of arity n for one calling mode.
// Static forms are only tried with the owner type in first position, so
// they start at arity 1.
func (e *Engine) tuples(owner catalog.Type, n int, static bool) iter.Seq[[]catalog.Type] {
	if !static {
		return Arity(e.types, n)
	}
	return func(yield func([]catalog.Type) bool) {
		if n == 0 {
			return
		}
		for tail := range Arity(e.types, n-1) {
			if !yield(append([]catalog.Type{owner}, tail...)) {
				return
			}
		}
	}
}

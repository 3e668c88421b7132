// Package pipeline builds stabilizer chains from group definitions.
//
// The command line and the HTTP API share this package so that both build
// groups the same way: definition validation, provider selection, base
// policy, logging and the summary cache all live here.
//
// # Stages
//
//  1. Build: add every generator of a definition to a [group.System]
//  2. Analyze: summarize the chain (order, base, orbit lengths, strong
//     generators), with caching keyed by the definition fingerprint
//  3. Render: draw the chain as DOT or SVG, with caching
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	summary, hit, err := runner.Analyze(ctx, def, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.Order)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permgroup/pkg/cache"
	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Options configures a pipeline run.
type Options struct {
	// Provider selects the permutation provider; empty means heap.
	Provider provider.Kind `json:"provider,omitempty"`

	// PoolCapacity bounds the pooled provider.
	PoolCapacity int `json:"pool_capacity,omitempty"`

	// ElementLimit lists up to this many group elements in a summary.
	ElementLimit int `json:"element_limit,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives progress messages; nil discards them.
	Logger *log.Logger `json:"-"`

	// Progress, when set, is called by Build after each generator is sifted
	// into the chain.
	Progress func(done, total int) `json:"-"`
}

// MaxElementLimit caps Options.ElementLimit.
const MaxElementLimit = 10000

// Validate checks the options and applies defaults.
func (o *Options) Validate() error {
	if _, ok := provider.New(o.Provider, 1, o.PoolCapacity); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown provider %q", o.Provider)
	}
	if o.ElementLimit < 0 || o.ElementLimit > MaxElementLimit {
		return errors.New(errors.ErrCodeInvalidInput, "element limit must be between 0 and %d", MaxElementLimit)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SummaryKeyOpts returns cache key options for summaries.
func (o *Options) SummaryKeyOpts() cache.SummaryKeyOpts {
	return cache.SummaryKeyOpts{ElementLimit: o.ElementLimit}
}

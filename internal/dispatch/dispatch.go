package dispatch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ostafen/sigscan/internal/classify"
	"github.com/ostafen/sigscan/internal/input"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 10

type Options struct {
	// Workers bounds the number of inputs classified at once
	// (DefaultWorkers when <= 0).
	Workers int

	Logger *slog.Logger

	// OnResult, if set, is called once per input as soon as its result
	// is ready. Calls are serialized, in completion order.
	OnResult func(classify.Result)
}

// Dispatcher classifies many inputs concurrently. Workers only share
// the classifier, which is read-only; each one owns its buffer and the
// text prepared from it.
type Dispatcher struct {
	classifier *classify.Classifier
	opts       Options

	mu sync.Mutex
}

func New(c *classify.Classifier, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		classifier: c,
		opts:       opts,
	}
}

func (d *Dispatcher) Workers() int { return d.opts.Workers }

// Run classifies every input and returns the results indexed like
// inputs. Inputs not started before ctx is done are labeled Unknown
// with the context error, so the result count always equals the input
// count.
func (d *Dispatcher) Run(ctx context.Context, inputs []input.Input) []classify.Result {
	results := make([]classify.Result, len(inputs))

	var g errgroup.Group
	g.SetLimit(d.opts.Workers)

	for i, in := range inputs {
		g.Go(func() error {
			results[i] = d.process(ctx, in)
			d.emit(results[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d *Dispatcher) process(ctx context.Context, in input.Input) classify.Result {
	if err := ctx.Err(); err != nil {
		return classify.Result{
			Name:  in.Name(),
			Label: classify.Unknown,
			Err:   err,
		}
	}

	res := d.classifier.ClassifyInput(in)
	if res.Err != nil {
		d.opts.Logger.Warn("unable to classify file", "file", res.Name, "err", res.Err)
	} else {
		d.opts.Logger.Debug("file classified", "file", res.Name, "label", res.Label, "size", res.Size)
	}
	return res
}

func (d *Dispatcher) emit(res classify.Result) {
	if d.opts.OnResult == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.opts.OnResult(res)
}

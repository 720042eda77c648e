package runtime

import (
	errspkg "github.com/drblury/propflow/internal/runtime/errors"
	"github.com/drblury/propflow/internal/runtime/exchange"
)

// Processor is a single pipeline stage. It mutates the exchange as a side
// effect and reports failure through the returned error.
type Processor interface {
	Process(ex exchange.Exchange) error
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(ex exchange.Exchange) error

func (f ProcessorFunc) Process(ex exchange.Exchange) error {
	return f(ex)
}

// Chain runs processors in order and stops at the first error.
func Chain(processors ...Processor) Processor {
	return ProcessorFunc(func(ex exchange.Exchange) error {
		for _, p := range processors {
			if p == nil {
				return errspkg.ErrProcessorRequired
			}
			if err := p.Process(ex); err != nil {
				return err
			}
		}
		return nil
	})
}

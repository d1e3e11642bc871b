// SPDX-License-Identifier: MIT
package drgn

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
)

// Batch parsing errors.
var (
	ErrParseTypeNames = errors.New("failed to parse type names")
	ErrNoTypeNames    = errors.New("no type names to parse")
)

// ParseTypeNames parses a batch of type names concurrently, one
// independent Lexer per name.
//
// workers caps the parsing goroutines; values below 1 default to the CPU
// count. Results keep the order of names. A failure does not stop the
// batch: every failing name is reported in the returned error, chained in
// input order, & its result slot left nil. ctx gates handing work to the
// pool alone; a parse underway runs to completion.
func (lang Language) ParseTypeNames(ctx context.Context, names []string, workers int) (types []*TypeName, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrParseTypeNames, err)
		}
	}()

	if len(names) < 1 {
		err = ErrNoTypeNames
		return
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	types = make([]*TypeName, len(names))
	errs := make([]error, len(names))

	wg := new(sync.WaitGroup)
	pool, poolErr := ants.NewPoolWithFunc(workers, func(payload interface{}) {
		defer wg.Done()

		index, ok := payload.(int)
		if !ok {
			return
		}

		types[index], errs[index] = lang.ParseTypeName(names[index])
	}, ants.WithLogger(fLogger))
	if poolErr != nil {
		err = poolErr
		return
	}
	defer pool.Release()

submit:
	for index := range names {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break submit
		default:
		}

		wg.Add(1)
		if invokeErr := pool.Invoke(index); invokeErr != nil {
			wg.Done()
			err = invokeErr

			break submit
		}
	}

	wg.Wait()

	var failed []string
	for index := range errs {
		if errs[index] == nil {
			continue
		}
		failed = append(failed, names[index])

		if err == nil {
			err = errs[index]
			continue
		}
		err = fmt.Errorf("%w; %w", err, errs[index])
	}
	if len(failed) > 0 {
		fLogger.Debugf("failing type names: %s", spew.Sprint(failed))
	}

	return
}

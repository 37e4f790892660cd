// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fxutil

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/fx"
	"go.uber.org/multierr"
)

// OneShot builds an fx.App from opts, starts it, calls oneShotFunc with its
// arguments resolved from the app, and stops the app.
//
// oneShotFunc must return nothing or a single error.
func OneShot(oneShotFunc interface{}, opts ...fx.Option) error {
	if fxAppTestOverride != nil {
		return fxAppTestOverride(oneShotFunc, opts)
	}

	delayed := newDelayedFxInvocation(oneShotFunc)
	opts = append([]fx.Option{appTimeouts(), fx.NopLogger}, opts...)
	opts = append(opts, delayed.option())

	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return multierr.Append(err, stopApp(app))
	}

	return multierr.Append(delayed.call(), stopApp(app))
}

// delayedFxInvocation captures the arguments fx resolves for fn during
// construction so fn can run after the lifecycle has started.
type delayedFxInvocation struct {
	fn   interface{}
	args []reflect.Value
}

func newDelayedFxInvocation(fn interface{}) *delayedFxInvocation {
	return &delayedFxInvocation{fn: fn}
}

func (d *delayedFxInvocation) option() fx.Option {
	ftype := reflect.TypeOf(d.fn)
	if ftype == nil || ftype.Kind() != reflect.Func {
		return fx.Error(errors.New("delayed invocation requires a function"))
	}

	in := make([]reflect.Type, ftype.NumIn())
	for i := range in {
		in[i] = ftype.In(i)
	}
	capture := reflect.MakeFunc(reflect.FuncOf(in, nil, false), func(args []reflect.Value) []reflect.Value {
		d.args = args
		return nil
	})
	return fx.Invoke(capture.Interface())
}

func (d *delayedFxInvocation) call() error {
	res := reflect.ValueOf(d.fn).Call(d.args)
	if len(res) == 0 {
		return nil
	}
	if err, ok := res[len(res)-1].Interface().(error); ok {
		return err
	}
	return nil
}

// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"errors"
	"log/slog"

	"github.com/blinklabs-io/meridian/ledger"
)

// Env carries the ledger state and shared plumbing that frames run against
type Env struct {
	state    ledger.StateReader
	observer Observer
	logger   *slog.Logger
}

// EnvOptionFunc is a function used to set an option on an Env
type EnvOptionFunc func(*Env)

// WithObserver sets the observer notified about operation outcomes
func WithObserver(observer Observer) EnvOptionFunc {
	return func(e *Env) {
		e.observer = observer
	}
}

// WithLogger sets the logger used for operation processing
func WithLogger(logger *slog.Logger) EnvOptionFunc {
	return func(e *Env) {
		e.logger = logger
	}
}

// NewEnv returns an Env reading committed state from the provided reader
func NewEnv(
	state ledger.StateReader,
	optionFuncs ...EnvOptionFunc,
) (*Env, error) {
	if state == nil {
		return nil, errors.New("no ledger state provided")
	}
	e := &Env{
		state: state,
	}
	for _, optionFunc := range optionFuncs {
		optionFunc(e)
	}
	if e.observer == nil {
		e.observer = NopObserver{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// State returns the committed state reader the Env was created with
func (e *Env) State() ledger.StateReader {
	return e.state
}

// reader returns the state to read during processing: the pending delta
// when applying, or the committed state when only checking
func (e *Env) reader(delta *ledger.Delta) ledger.StateReader {
	if delta != nil {
		return delta
	}
	return e.state
}

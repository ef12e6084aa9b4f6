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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blinklabs-io/meridian/cmd/common"
	"github.com/blinklabs-io/meridian/ledger"
	"github.com/blinklabs-io/meridian/ledger/operation"
	"github.com/blinklabs-io/meridian/metrics"
)

type txApplyFlags struct {
	*common.GlobalFlags
	scenario  string
	checkOnly bool
}

func main() {
	// Parse commandline
	f := txApplyFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(
		&f.scenario,
		"scenario",
		"",
		"path to the scenario file describing the transaction to run",
	)
	f.Flagset.BoolVar(
		&f.checkOnly,
		"check-only",
		false,
		"validate the operations without applying them",
	)
	f.Parse()
	// Build initial ledger state
	st := common.LoadGenesisStore(f.GlobalFlags)
	scenario, err := common.NewScenarioFromFile(f.scenario)
	if err != nil {
		fmt.Printf("failed to load scenario: %s\n", err)
		os.Exit(1)
	}
	ops, err := scenario.BuildOperations()
	if err != nil {
		fmt.Printf("failed to build operations: %s\n", err)
		os.Exit(1)
	}
	tx, err := scenario.Tx(ops)
	if err != nil {
		fmt.Printf("failed to build transaction: %s\n", err)
		os.Exit(1)
	}
	observer, err := metrics.NewPrometheusObserver(prometheus.NewRegistry())
	if err != nil {
		fmt.Printf("failed to create observer: %s\n", err)
		os.Exit(1)
	}
	env, err := operation.NewEnv(st, operation.WithObserver(observer))
	if err != nil {
		fmt.Printf("failed to create environment: %s\n", err)
		os.Exit(1)
	}
	// Process each operation, all against the same delta so later
	// operations see earlier effects. Any failure discards the whole delta
	var delta *ledger.Delta
	if !f.checkOnly {
		delta = ledger.NewDelta(st)
	}
	hdr, err := st.Header()
	if err != nil {
		fmt.Printf("failed to read ledger header: %s\n", err)
		os.Exit(1)
	}
	txOk := true
	results := make([]*operation.Result, 0, len(ops))
	for i, op := range ops {
		res := operation.NewResult()
		frame, err := operation.NewFrame(
			op,
			res,
			operation.FeeCharged(hdr.BaseFee),
			tx,
		)
		if err != nil {
			fmt.Printf("failed to build operation %d: %s\n", i, err)
			os.Exit(1)
		}
		var ok bool
		if f.checkOnly {
			ok, err = frame.CheckValid(env, nil)
		} else {
			ok, err = frame.Apply(env, delta)
		}
		if err != nil {
			fmt.Printf("failed to process operation %d: %s\n", i, err)
			os.Exit(1)
		}
		results = append(results, res)
		if !ok {
			txOk = false
			break
		}
	}
	if txOk && !f.checkOnly {
		if err := delta.Commit(st); err != nil {
			fmt.Printf("failed to commit: %s\n", err)
			os.Exit(1)
		}
	}
	for i, res := range results {
		resultJson, err := json.Marshal(res)
		if err != nil {
			fmt.Printf("failed to render result %d: %s\n", i, err)
			os.Exit(1)
		}
		fmt.Printf("operation %d: %s\n", i, resultJson)
	}
	if txOk {
		if f.checkOnly {
			fmt.Println("transaction valid")
		} else {
			fmt.Println("transaction applied")
		}
	} else {
		fmt.Println("transaction rejected")
		os.Exit(1)
	}
}

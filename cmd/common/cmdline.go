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

package common

import (
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/meridian/ledger"
)

type GlobalFlags struct {
	Flagset *flag.FlagSet
	Genesis string
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Genesis,
		"genesis",
		"",
		"path to the genesis file defining the initial ledger state",
	)
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
}

// LoadGenesisStore builds the initial ledger state from the genesis file
// named on the commandline
func LoadGenesisStore(f *GlobalFlags) *ledger.MemStore {
	if f.Genesis == "" {
		fmt.Println("no genesis file specified")
		os.Exit(1)
	}
	genesis, err := ledger.NewGenesisFromFile(f.Genesis)
	if err != nil {
		fmt.Printf("failed to load genesis: %s\n", err)
		os.Exit(1)
	}
	st, err := genesis.Store()
	if err != nil {
		fmt.Printf("failed to build ledger state: %s\n", err)
		os.Exit(1)
	}
	return st
}

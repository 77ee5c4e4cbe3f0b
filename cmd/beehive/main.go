// Licensed to LinDB under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. LinDB licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfg holds the --config flag: the path init-config writes the default
// pool config to. run and dump do not read a config file; run starts from
// config.NewDefaultPool().
var cfg string

var rootCmd = &cobra.Command{
	Use:   "beehive",
	Short: "beehive runs and inspects an in-process priority thread pool",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg, "config", "",
		fmt.Sprintf("path init-config writes the pool config to, default is %s", defaultCfgFile))

	rootCmd.AddCommand(runCmd, dumpCmd, initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

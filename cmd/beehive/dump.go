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
	"strconv"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lindb/beehive"
)

var dumpTasks int

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "run a small demo workload and print worker stats as a table",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpTasks, "tasks", 64, "number of demo tasks to schedule")
}

func runDump(_ *cobra.Command, _ []string) error {
	hive := beehive.New(0)
	defer hive.Close()

	// runKey is shared across every demo task so Idempotency() visibly
	// collapses the redundant submissions down to a single run.
	runKey := uuid.NewString()
	results := beehive.Transform(hive, make([]int, dumpTasks), func(i int) int {
		if !hive.Idempotency().NeedsRun(runKey) {
			return -1
		}
		return i
	})

	ran := 0
	for _, r := range results {
		if r >= 0 {
			ran++
		}
	}
	fmt.Fprintf(os.Stdout, "idempotent run count: %d (expected 1)\n\n", ran)

	hive.Dump()

	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.AppendHeader(table.Row{"Worker", "Messages", "Runs", "Active", "Idle"})
	for i, s := range hive.Stats() {
		writer.AppendRow(table.Row{
			strconv.Itoa(i),
			s.Messages,
			s.Runs,
			s.Active.String(),
			s.Idle.String(),
		})
	}
	writer.Render()
	return nil
}

// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-dfsched/pkg/sched"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [flags] dfg_file",
	Short: "schedule a data-flow graph onto clock cycles.",
	Long: `Schedule the statements of a given data-flow graph onto discrete clock cycles,
	respecting operation latencies, per-cycle resource limits and the per-cycle
	combinational delay budget.  Prints the resulting latency in cycles.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		period := GetFloat(cmd, "period")
		// Parse graph description
		graph, catalogue := readGraphFile(args[0])
		// Go!
		latency, err := sched.Schedule(graph, catalogue, period)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		fmt.Println(latency)
		//
		if GetFlag(cmd, "table") {
			printScheduleTable(graph)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().Float64P("period", "p", 1.0, "clock period (per-cycle delay budget)")
	scheduleCmd.Flags().BoolP("table", "t", false, "print per-statement start cycles")
}

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

var checkCmd = &cobra.Command{
	Use:   "check [flags] dfg_file",
	Short: "schedule a data-flow graph and validate the result.",
	Long: `Schedule a given data-flow graph, then check the resulting schedule against
	the guarantees the scheduler must provide: topological numbering, producer
	precedence, resource limits and the per-cycle delay budget.`,
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
		// Schedule
		latency, err := sched.Schedule(graph, catalogue, period)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Validate
		errs := sched.Validate(graph, period)
		for _, err := range errs {
			fmt.Println(err)
		}
		//
		if len(errs) > 0 {
			os.Exit(1)
		}
		//
		fmt.Printf("ok (latency %d)\n", latency)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Float64P("period", "p", 1.0, "clock period (per-cycle delay budget)")
}

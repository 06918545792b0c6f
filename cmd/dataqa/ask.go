// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Run one question through the pipeline",
	Long: `Ask runs a single question through the full pipeline and prints the
answer on stdout. Step-by-step progress goes to stderr; pass --quiet to
suppress it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		var log io.Writer = os.Stderr
		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			log = io.Discard
		}

		p := newPipeline(loadConfig(), log)
		fmt.Println(p.Answer(cmd.Context(), question))
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("quiet", false, "suppress progress output")

	rootCmd.AddCommand(askCmd)
}

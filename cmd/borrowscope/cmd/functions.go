package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ikari-pl/borrowscope/internal/data"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the functions in the analysis output",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := data.NewClient(cfg.Data, nil)
		fns, err := client.Functions(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading function catalog: %w", err)
		}
		for _, fn := range fns {
			if fn.Name != fn.ID {
				fmt.Printf("%s\t%s\n", fn.ID, fn.Name)
				continue
			}
			fmt.Println(fn.ID)
		}
		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths <function>",
	Short: "List the enumerated execution paths of a function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := data.NewClient(cfg.Data, nil)
		paths, err := client.Paths(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading paths for %s: %w", args[0], err)
		}
		for i, p := range paths {
			fmt.Println(strconv.Itoa(i) + ":\t" + p.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(pathsCmd)
}

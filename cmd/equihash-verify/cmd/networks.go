package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/equihash-verify/equihash/config"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List registered network profiles",
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"name", "n", "k", "person"})
		for _, p := range config.Profiles() {
			table.Append([]string{
				p.Name,
				strconv.Itoa(int(p.Params.N)),
				strconv.Itoa(int(p.Params.K)),
				string(p.Params.Person[:]),
			})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}

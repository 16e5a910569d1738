package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	from string
	to   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records in the chain",
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := fmt.Sprintf("%s/v1/chain/list", url)
		switch {
		case from != "" && to != "":
			endpoint = fmt.Sprintf("%s/%s/%s", endpoint, from, to)
		case from != "":
			endpoint = fmt.Sprintf("%s/%s", endpoint, from)
		}

		resp, err := http.Get(endpoint)
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		out, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&from, "from", "f", "", "First record index to list.")
	listCmd.Flags().StringVarP(&to, "to", "t", "", "Last record index to list.")
}

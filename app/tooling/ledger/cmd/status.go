package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node's genesis, latest record and pool",
	Run: func(cmd *cobra.Command, args []string) {
		for _, endpoint := range []string{"genesis/list", "chain/latest", "pool/list"} {
			resp, err := http.Get(fmt.Sprintf("%s/v1/%s", url, endpoint))
			if err != nil {
				log.Fatal(err)
			}

			out, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(string(out))
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

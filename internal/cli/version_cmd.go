package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the depsolve version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(buildinfo.String())
			return nil
		},
	}
}

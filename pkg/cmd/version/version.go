package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func NewCmdVersion(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of relpub",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), Format(version))
		},
	}
}

// Format renders the version line, including the toolchain the default ABI tag comes from
func Format(version string) string {
	return fmt.Sprintf("relpub version %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

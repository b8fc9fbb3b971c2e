package root

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/log"
	"github.com/relpub/relpub/internal/config"
	bkErrors "github.com/relpub/relpub/internal/errors"
	"github.com/relpub/relpub/pkg/cmd/factory"
	platformCmd "github.com/relpub/relpub/pkg/cmd/platform"
	publishCmd "github.com/relpub/relpub/pkg/cmd/publish"
	versionCmd "github.com/relpub/relpub/pkg/cmd/version"
	"github.com/spf13/cobra"
)

func NewCmdRoot(f *factory.Factory) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "relpub --artifact <path> [flags]",
		Short: "Publish compressed build artifacts to GitHub releases",
		Long: heredoc.Doc(`
			Publish a built binary to the GitHub release of the current tag, once
			per compression codec, named after the platform it was built for.

			Running relpub without a subcommand is the same as relpub publish.
		`),
		Example: heredoc.Doc(`
			$ relpub --artifact build/tool --prefix tool-
			$ relpub platform
		`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       f.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Viper.BindPFlags(cmd.Flags()); err != nil {
				return bkErrors.NewInternalError(err, "binding flags")
			}
			config.Bind(f.Viper)
			if f.Viper.GetBool(config.DebugKey) {
				f.Logger.SetLevel(log.DebugLevel)
			}
			return nil
		},
		RunE: publishCmd.RunE(f),
	}

	cmd.SetVersionTemplate(versionCmd.Format(f.Version))
	config.AddGlobalFlags(cmd.PersistentFlags())
	config.AddPublishFlags(cmd.Flags())

	cmd.AddCommand(publishCmd.NewCmdPublish(f))
	cmd.AddCommand(platformCmd.NewCmdPlatform(f))
	cmd.AddCommand(versionCmd.NewCmdVersion(f.Version))

	return cmd, nil
}

package platform

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/relpub/relpub/internal/artifact"
	"github.com/relpub/relpub/internal/config"
	bkErrors "github.com/relpub/relpub/internal/errors"
	"github.com/relpub/relpub/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

func NewCmdPlatform(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platform [flags]",
		Short: "Show the platform tag and artifact name for this host",
		Long: heredoc.Doc(`
			Show the platform tag detected for this host and the name an artifact
			would be published under. Nothing is uploaded and no GitHub
			environment is required.
		`),
		Example: heredoc.Doc(`
			$ relpub platform
			$ relpub platform --prefix tool- --suffix -static
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: bkErrors.WrapRunE(func(cmd *cobra.Command, args []string) error {
			if err := f.Viper.BindPFlags(cmd.Flags()); err != nil {
				return bkErrors.NewInternalError(err, "binding flags")
			}

			conf, err := config.Settings(f.Viper, f.Fs)
			if err != nil {
				return err
			}

			detected := f.Detector.Detect(cmd.Context()).String()
			platform := detected
			if conf.Platform != "" {
				platform = conf.Platform
			}

			codecs := f.Codecs.Negotiate(conf.Codecs)
			names := make([]string, 0, len(codecs))
			for _, c := range codecs {
				names = append(names, c.String())
			}

			name := artifact.Name(conf.Prefix, platform, conf.Arch, conf.ABI, conf.Suffix)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Platform: %s\n", platform)
			if platform != detected {
				fmt.Fprintf(out, "Detected: %s\n", detected)
			}
			fmt.Fprintf(out, "Arch:     %s\n", conf.Arch)
			fmt.Fprintf(out, "ABI:      %s\n", conf.ABI)
			fmt.Fprintf(out, "Codecs:   %s\n", strings.Join(names, ", "))
			fmt.Fprintf(out, "Name:     %s\n", name)
			return nil
		}),
	}

	config.AddNamingFlags(cmd.Flags())

	return cmd
}

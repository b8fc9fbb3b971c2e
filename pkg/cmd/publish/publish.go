package publish

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/relpub/relpub/internal/artifact"
	"github.com/relpub/relpub/internal/config"
	bkErrors "github.com/relpub/relpub/internal/errors"
	bkIO "github.com/relpub/relpub/internal/io"
	pub "github.com/relpub/relpub/internal/publish"
	"github.com/relpub/relpub/pkg/cmd/factory"
	"github.com/relpub/relpub/pkg/cmd/validation"
	"github.com/spf13/cobra"
)

func NewCmdPublish(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish --artifact <path> [flags]",
		Short: "Compress a built binary and attach it to a GitHub release",
		Long: heredoc.Doc(`
			Compress a built binary with every enabled codec and upload each copy
			as an asset of the release for the current tag.

			The release is taken from GITHUB_REPOSITORY and GITHUB_REF, and
			GITHUB_TOKEN authenticates the upload. A failed upload is reported
			but does not fail the step.
		`),
		Example: heredoc.Doc(`
			$ relpub publish --artifact build/tool --prefix tool-
			$ relpub publish -a build/tool --codecs br,gz,zst --dry-run
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunE(f),
	}

	config.AddPublishFlags(cmd.Flags())

	return cmd
}

// RunE returns the publish action, shared with the root command
func RunE(f *factory.Factory) func(cmd *cobra.Command, args []string) error {
	return bkErrors.WrapRunE(func(cmd *cobra.Command, args []string) error {
		if err := f.Viper.BindPFlags(cmd.Flags()); err != nil {
			return bkErrors.NewInternalError(err, "binding flags")
		}

		conf, err := config.Load(f.Viper, f.Fs)
		if err != nil {
			return err
		}
		if err := validation.ValidateArtifact(f.Fs, conf.ArtifactPath); err != nil {
			return err
		}

		platform := conf.Platform
		if platform == "" {
			platform = f.Detector.Detect(cmd.Context()).String()
		}

		f.Logger.Debug("publishing", "repository", conf.Repository(), "tag", conf.Tag, "platform", platform, "dry_run", conf.DryRun)

		releases, err := f.Releases(conf)
		if err != nil {
			return bkErrors.NewConfigurationError(err, "creating GitHub client")
		}

		publisher := &pub.Publisher{
			Fs:       f.Fs,
			Releases: releases,
			Codecs:   f.Codecs,
			Logger:   f.Logger,
			Out:      cmd.OutOrStdout(),
		}

		report, err := publisher.Run(cmd.Context(), pub.Job{
			Artifact: artifact.Descriptor{
				Request:  artifact.Request{Path: conf.ArtifactPath, Prefix: conf.Prefix, Suffix: conf.Suffix},
				Platform: platform,
				Arch:     conf.Arch,
				ABI:      conf.ABI,
			},
			Owner:  conf.Owner,
			Repo:   conf.Repo,
			Tag:    conf.Tag,
			Codecs: conf.Codecs,
			DryRun: conf.DryRun,
		})
		if err != nil {
			return err
		}

		failed := report.Failed()
		warn := bkErrors.NewHandler().WithWriter(cmd.ErrOrStderr()).WithAnnotate(bkIO.InActions())
		for _, res := range failed {
			warn.PrintWarning("%s was not published: %s", res.Name, res.Err)
		}
		for _, res := range report.Results {
			if res.Asset != nil {
				f.Logger.Debug("published", "name", res.Name, "size", artifact.FormatBytes(res.Size), "url", res.Asset.DownloadURL)
			}
		}
		if len(failed) == len(report.Results) {
			f.Logger.Warn("nothing was published", "artifact", report.Name, "release", report.Target.String())
		}

		return nil
	})
}

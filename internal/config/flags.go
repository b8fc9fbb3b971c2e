package config

import (
	"github.com/relpub/relpub/internal/compress"
	"github.com/spf13/pflag"
)

// AddNamingFlags registers the flags that decide an artifact's name
func AddNamingFlags(fs *pflag.FlagSet) {
	defaults := make([]string, 0, len(compress.DefaultCodecs))
	for _, c := range compress.DefaultCodecs {
		defaults = append(defaults, c.String())
	}

	fs.String(PrefixKey, "", "Text prepended to the artifact name")
	fs.String(SuffixKey, "", "Text appended to the artifact name, before the codec extension")
	fs.String(PlatformKey, "", "Platform tag to publish under instead of the detected one")
	fs.String(ArchKey, "", "Architecture tag (default: the GOARCH of this binary)")
	fs.String(ABIKey, "", "ABI tag (default: the Go release that built this binary)")
	fs.StringSlice(CodecsKey, defaults, "Codecs to publish, in order: br, gz, zst, lz4")
}

// AddPublishFlags registers every flag of a publish run
func AddPublishFlags(fs *pflag.FlagSet) {
	fs.StringP(ArtifactKey, "a", "", "Path of the built binary to publish")
	AddNamingFlags(fs)
	fs.String(TagKey, "", "Release tag to publish to (default: the tag in GITHUB_REF)")
	fs.Bool(DryRunKey, false, "Compress and report without uploading")
}

// AddGlobalFlags registers the flags shared by every command
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.Bool(DebugKey, false, "Log probe steps and HTTP requests")
	fs.String(EnvFileKey, "", "Load environment variables from a dotenv file")
	fs.String(ConfigKey, configFilePath, "Optional YAML config file")
}

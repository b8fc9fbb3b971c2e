// Package config resolves the settings of a publish run
//
// Settings come from command line flags, the GitHub Actions environment, an optional dotenv file and an optional
// .relpub.yaml in the working directory, in that order of precedence. Everything is read once into an immutable Config.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/relpub/relpub/internal/compress"
	bkErrors "github.com/relpub/relpub/internal/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL = "https://api.github.com/"

	configFilePath = ".relpub.yaml"
	envPrefix      = "RELPUB"
)

// Keys shared by flags, environment bindings and the config file
const (
	ArtifactKey   = "artifact"
	PrefixKey     = "prefix"
	SuffixKey     = "suffix"
	PlatformKey   = "platform"
	ArchKey       = "arch"
	ABIKey        = "abi"
	CodecsKey     = "codecs"
	TagKey        = "tag"
	DryRunKey     = "dry-run"
	DebugKey      = "debug"
	EnvFileKey    = "env-file"
	ConfigKey     = "config"
	RepositoryKey = "repository"
	RefKey        = "ref"
	TokenKey      = "token"
	APIURLKey     = "api-url"
)

// Config is the resolved configuration of a run. It is never modified after Load.
type Config struct {
	ArtifactPath string
	Prefix       string
	Suffix       string

	// Platform overrides detection when set
	Platform string
	Arch     string
	ABI      string
	Codecs   []compress.Codec

	Owner string
	Repo  string
	Tag   string
	Token string

	APIURL string
	DryRun bool
	Debug  bool

	// ConfigFile is the config file that was read, if any
	ConfigFile string
}

// Repository returns owner/repo
func (c *Config) Repository() string {
	return c.Owner + "/" + c.Repo
}

// Bind registers the environment variables each key can be read from
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(RepositoryKey, "GITHUB_REPOSITORY")
	_ = v.BindEnv(RefKey, "GITHUB_REF")
	_ = v.BindEnv(TokenKey, "RELPUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv(APIURLKey, "GITHUB_API_URL")
	_ = v.BindEnv(ABIKey, "RELPUB_ABI")
	_ = v.BindEnv(DebugKey, "RELPUB_DEBUG", "RUNNER_DEBUG")

	v.SetDefault(ConfigKey, configFilePath)
	v.SetDefault(APIURLKey, DefaultAPIURL)
}

// Load reads the environment file and config file named in v, then resolves
// and validates a Config. Flags must already be bound to v.
func Load(v *viper.Viper, fs afero.Fs) (*Config, error) {
	configFile, err := prepare(v, fs)
	if err != nil {
		return nil, err
	}
	return resolve(v, configFile)
}

// Settings resolves only the naming inputs of a run. It does not need a
// repository, ref or token.
func Settings(v *viper.Viper, fs afero.Fs) (*Config, error) {
	configFile, err := prepare(v, fs)
	if err != nil {
		return nil, err
	}

	conf := &Config{ConfigFile: configFile}
	if err := resolveNaming(v, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func prepare(v *viper.Viper, fs afero.Fs) (string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	Bind(v)

	if path := v.GetString(EnvFileKey); path != "" {
		if err := loadEnvFile(fs, path); err != nil {
			return "", err
		}
	}
	return readConfigFile(v, fs)
}

func readConfigFile(v *viper.Viper, fs afero.Fs) (string, error) {
	path := v.GetString(ConfigKey)
	if path == "" {
		return "", nil
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", bkErrors.NewConfigurationError(err, fmt.Sprintf("checking config file %s", path))
	}
	if !exists {
		return "", nil
	}

	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", bkErrors.NewConfigurationError(err, fmt.Sprintf("reading config file %s", path),
			"The config file must be YAML with keys such as prefix, suffix, abi and codecs")
	}
	return path, nil
}

func resolve(v *viper.Viper, configFile string) (*Config, error) {
	conf := &Config{
		ConfigFile: configFile,
		Tag:        v.GetString(TagKey),
		Token:      v.GetString(TokenKey),
		APIURL:     v.GetString(APIURLKey),
		DryRun:     v.GetBool(DryRunKey),
		Debug:      v.GetBool(DebugKey),
	}

	if err := resolveNaming(v, conf); err != nil {
		return nil, err
	}

	if conf.ArtifactPath == "" {
		return nil, bkErrors.NewValidationError(nil, "--artifact is required",
			"Pass the path of the built binary with --artifact")
	}

	repository := v.GetString(RepositoryKey)
	if repository == "" {
		return nil, bkErrors.NewConfigurationError(nil, "GITHUB_REPOSITORY is not set",
			"Run inside GitHub Actions or export GITHUB_REPOSITORY=owner/repo")
	}
	owner, repo, err := ParseRepository(repository)
	if err != nil {
		return nil, bkErrors.NewConfigurationError(err, "parsing GITHUB_REPOSITORY")
	}
	conf.Owner, conf.Repo = owner, repo

	if conf.Tag == "" {
		ref := v.GetString(RefKey)
		if ref == "" {
			return nil, bkErrors.NewConfigurationError(nil, "GITHUB_REF is not set",
				"Run the workflow on a tag push or pass --tag")
		}
		tag, err := TagFromRef(ref)
		if err != nil {
			return nil, bkErrors.NewConfigurationError(err, "parsing GITHUB_REF",
				"Run the workflow on a tag push or pass --tag")
		}
		conf.Tag = tag
	}

	if conf.Token == "" && !conf.DryRun {
		return nil, bkErrors.NewConfigurationError(nil, "GITHUB_TOKEN is not set",
			"Pass the workflow token to the step: env: GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}")
	}

	return conf, nil
}

func resolveNaming(v *viper.Viper, conf *Config) error {
	conf.ArtifactPath = v.GetString(ArtifactKey)
	conf.Prefix = v.GetString(PrefixKey)
	conf.Suffix = v.GetString(SuffixKey)
	conf.Platform = v.GetString(PlatformKey)
	conf.Arch = firstNonEmpty(v.GetString(ArchKey), runtime.GOARCH)
	conf.ABI = firstNonEmpty(v.GetString(ABIKey), DefaultABI())

	codecs, err := compress.ParseCodecs(v.GetStringSlice(CodecsKey))
	if err != nil {
		return bkErrors.NewValidationError(err, "parsing --codecs")
	}
	if len(codecs) == 0 {
		codecs = compress.DefaultCodecs
	}
	conf.Codecs = codecs
	return nil
}

// DefaultABI is the release of the Go toolchain that built this binary,
// for example go1.22 for go1.22.4
func DefaultABI() string {
	return abiFromVersion(runtime.Version())
}

func abiFromVersion(version string) string {
	if !strings.HasPrefix(version, "go") {
		return "devel"
	}
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}

func firstNonEmpty(s ...string) string {
	for _, k := range s {
		if k != "" {
			return k
		}
	}

	return ""
}

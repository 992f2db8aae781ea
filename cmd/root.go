package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/internai/internal/ai/gemini"
	"github.com/spigell/internai/internal/internai"
	"github.com/spigell/internai/internal/workflow"
)

const (
	app       = "internai"
	envPrefix = "INTERNAI"

	backendHTTP   = "http"
	backendGemini = "gemini"
)

type Config struct {
	Backend  string          `mapstructure:"backend"`
	API      *APIConfig      `mapstructure:"api"`
	Analysis *AnalysisConfig `mapstructure:"analysis"`
	JobsFile string          `mapstructure:"jobs-file"`
	Filters  *FiltersConfig  `mapstructure:"filters"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type APIConfig struct {
	URL               string        `mapstructure:"url"`
	UserAgent         string        `mapstructure:"user-agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
}

type AnalysisConfig struct {
	SampleSize       int `mapstructure:"sample-size"`
	MissingSkillsCap int `mapstructure:"missing-skills-cap"`
}

type FiltersConfig struct {
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	Sources          []string `mapstructure:"sources"`
	ExcludeFile      string   `mapstructure:"exclude-file"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "internai analyzes a resume, matches it against internship postings and writes cover letters",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is internai.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("backend", "", "scoring backend: http or gemini")
	rootCmd.PersistentFlags().String("api-url", "", "InternAI service url")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every config key so env overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", backendHTTP)
	v.SetDefault("api.url", internai.DefaultAPIURL)
	v.SetDefault("api.user-agent", "spigell/internai")
	v.SetDefault("api.timeout", 60*time.Second)
	v.SetDefault("api.requests-per-second", 0)
	v.SetDefault("analysis.sample-size", workflow.DefaultSampleSize)
	v.SetDefault("analysis.missing-skills-cap", workflow.DefaultMissingSkillsCap)
	v.SetDefault("jobs-file", "")
	v.SetDefault("filters.exclude-companies", []string{})
	v.SetDefault("filters.sources", []string{})
	v.SetDefault("filters.exclude-file", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", gemini.DefaultModel)
	v.SetDefault("ai.gemini.embedding-model", gemini.DefaultEmbeddingModel)
	v.SetDefault("ai.gemini.max-log-length", 200)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.API == nil {
		config.API = &APIConfig{}
	}
	if config.Analysis == nil {
		config.Analysis = &AnalysisConfig{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}

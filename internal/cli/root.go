package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "verifact",
	Short: "VeriFact - Probabilistic fact checking from live web evidence",
	Long: `VeriFact checks a single factual claim against live web evidence.

It searches tiered web providers for coverage of the claim, pulls the
most relevant sentences from each source, classifies their stance toward
the claim, and reduces the credibility-weighted evidence to a verdict:
LIKELY TRUE, LIKELY FALSE, MIXED / MISLEADING, or UNVERIFIED.

A verdict is a confidence-weighted judgment from the evidence that was
available at check time. It is not ground truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for VeriFact.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("verifact v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.verifact/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// Pull API keys from a .env file if one is present. Values already
	// exported in the environment win.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.verifact")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VERIFACT_*
	viper.SetEnvPrefix("VERIFACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration for a command run:
// defaults first, then the config file and VERIFACT_* environment, then
// explicitly set flags, and finally API credentials from the environment.
func buildConfig(cmd *cobra.Command) *model.Config {
	cfg := model.DefaultConfig()
	applyConfigFile(cfg)
	applyFlags(cmd, cfg)
	loadCredentials(cfg)
	return cfg
}

// applyConfigFile overlays settings managed by viper onto the config.
func applyConfigFile(cfg *model.Config) {
	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if viper.IsSet("http.max_body_bytes") {
		cfg.HTTP.MaxBodyBytes = viper.GetInt64("http.max_body_bytes")
	}
	if viper.IsSet("http.respect_robots") {
		cfg.HTTP.RespectRobots = viper.GetBool("http.respect_robots")
	}
	if viper.IsSet("search.max_results") {
		cfg.Search.MaxResults = viper.GetInt("search.max_results")
	}
	if viper.IsSet("search.max_retries") {
		cfg.Search.MaxRetries = viper.GetInt("search.max_retries")
	}
	if viper.IsSet("evidence.workers") {
		cfg.Evidence.Workers = viper.GetInt("evidence.workers")
	}
	if viper.IsSet("evidence.top_sentences") {
		cfg.Evidence.TopSentences = viper.GetInt("evidence.top_sentences")
	}
	if viper.IsSet("evidence.min_similarity") {
		cfg.Evidence.MinSimilarity = viper.GetFloat64("evidence.min_similarity")
	}
	if v := viper.GetString("inference.embed_model"); v != "" {
		cfg.Inference.EmbedModel = v
	}
	if v := viper.GetString("inference.stance_model"); v != "" {
		cfg.Inference.StanceModel = v
	}
	if viper.IsSet("inference.timeout") {
		cfg.Inference.Timeout = viper.GetInt("inference.timeout")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if v := viper.GetString("output.log_level"); v != "" {
		cfg.Output.LogLevel = v
	}
}

// loadCredentials pulls API keys from the environment into the config.
// Keys never come from the config file.
func loadCredentials(cfg *model.Config) {
	cfg.Search.TavilyKey = os.Getenv("TAVILY_API_KEY")
	cfg.Search.BraveKey = os.Getenv("BRAVE_API_KEY")
	cfg.Inference.APIKey = os.Getenv("OPENAI_API_KEY")
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.Inference.BaseURL = base
	}
}

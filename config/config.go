package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/locr-dev/locr/constants/lipgloss"
	"github.com/locr-dev/locr/providers"
)

// Config represents the structure of the configuration file.
type Config struct {
	Version          string                      `mapstructure:"version"`
	CodebaseDir      string                      `mapstructure:"codebase_dir"`
	OutputDir        string                      `mapstructure:"output_dir"`
	Extensions       []string                    `mapstructure:"extensions"`
	EnableCache      bool                        `mapstructure:"enable_cache"`
	CacheDir         string                      `mapstructure:"cache_dir"`
	LogFile          string                      `mapstructure:"log_file"`
	AIProviderConfig *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
}

var defaultTemperature float32 = 0.3

// DefaultConfig values.
var DefaultConfig = Config{
	Version:     "1.0.0",
	CodebaseDir: ".",
	OutputDir:   "./code_reviews",
	Extensions:  []string{".py", ".js", ".cpp", ".java", ".ts", ".html", ".css", ".go"},
	EnableCache: true,
	CacheDir:    "",
	LogFile:     "code_reviewer.log",
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:    "ollama",
		BaseURL:     "http://localhost:11434/api",
		Model:       "qwen2.5-coder:7b",
		Temperature: &defaultTemperature,
		MaxTokens:   1024,
	},
}

// cfgFile holds the path to the configuration file (set via CLI).
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and
// environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		viper.SetConfigName("locr-config")
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// No config file at all is fine, defaults apply.
				fmt.Println(lipgloss.Gray.Render("No configuration file found, using defaults"))
			}
		}
	}

	bindFlags(rootCmd)

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("codebase_dir", DefaultConfig.CodebaseDir)
	viper.SetDefault("output_dir", DefaultConfig.OutputDir)
	viper.SetDefault("extensions", DefaultConfig.Extensions)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("cache_dir", DefaultConfig.CacheDir)
	viper.SetDefault("log_file", DefaultConfig.LogFile)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.temperature", *DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.max_tokens", DefaultConfig.AIProviderConfig.MaxTokens)
}

// bindEnv explicitly binds environment variables to configuration keys.
func bindEnv() {
	_ = viper.BindEnv("codebase_dir", "CODEBASE_DIR")
	_ = viper.BindEnv("output_dir", "OUTPUT_DIR")
	_ = viper.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = viper.BindEnv("cache_dir", "CACHE_DIR")
	_ = viper.BindEnv("log_file", "LOG_FILE")
	_ = viper.BindEnv("ai_provider_config.provider", "PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "MODEL")
	_ = viper.BindEnv("ai_provider_config.temperature", "TEMPERATURE")
	_ = viper.BindEnv("ai_provider_config.max_tokens", "MAX_TOKENS")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("codebase_dir", rootCmd.PersistentFlags().Lookup("codebase_dir"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output_dir"))
	_ = viper.BindPFlag("extensions", rootCmd.PersistentFlags().Lookup("extensions"))
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache_dir"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log_file"))
	_ = viper.BindPFlag("ai_provider_config.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
	_ = viper.BindPFlag("ai_provider_config.max_tokens", rootCmd.PersistentFlags().Lookup("max_tokens"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("codebase_dir", DefaultConfig.CodebaseDir, "Root directory of the codebase to review.")
	rootCmd.PersistentFlags().String("output_dir", DefaultConfig.OutputDir, "Directory where review artifacts (JSON and text) are written.")
	rootCmd.PersistentFlags().StringSlice("extensions", DefaultConfig.Extensions, "File extensions eligible for review.")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable fingerprint-keyed review caching.")
	rootCmd.PersistentFlags().String("cache_dir", DefaultConfig.CacheDir, "Directory for cached reviews (defaults to .locr-cache in the working directory).")
	rootCmd.PersistentFlags().String("log_file", DefaultConfig.LogFile, "Path of the run log file.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.Provider, "The name of the AI provider (currently 'ollama').")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of the AI provider API.")
	rootCmd.PersistentFlags().String("model", DefaultConfig.AIProviderConfig.Model, "The name of the model used for reviews.")
	rootCmd.PersistentFlags().Float32("temperature", *DefaultConfig.AIProviderConfig.Temperature, "Adjusts the model's creativity (0-1).")
	rootCmd.PersistentFlags().Int("max_tokens", DefaultConfig.AIProviderConfig.MaxTokens, "Maximum number of tokens the model may generate per review.")
}

package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/zisraw/image"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "czitool",
	Short: "Inspect and export Zeiss CZI containers",
	Long: `czitool decodes the segmented CZI container format: it prints
structural summaries, extracts the embedded XML metadata, tabulates
physical axis coordinates, fingerprints pixel payloads, and exports
raw pixel cells.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
	},
}

// Execute runs the root command; main wires its error to the exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.czitool.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntP("parallelism", "p", 1,
		"concurrent subblock readers during load")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("load.parallelism", rootCmd.PersistentFlags().Lookup("parallelism"))
}

// initConfig wires the config file and CZITOOL_* environment variables
// into viper. A missing config file is fine; a malformed one is not.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".czitool")
	}

	viper.SetEnvPrefix("CZITOOL")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// openImage loads a container with the configured parallelism, reporting
// load time at debug level.
func openImage(path string, opts ...image.LoadOption) (*image.Image, error) {
	if n := viper.GetInt("load.parallelism"); n > 1 {
		opts = append(opts, image.WithLocateParallelism(n))
	}

	start := time.Now()
	img, err := image.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("container loaded",
		"path", filepath.Base(path),
		"subblocks", len(img.SubBlocks()),
		"elapsed", time.Since(start))

	return img, nil
}

// Package cli はoracleコマンドのサブコマンドを定義します。
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/platform/logging"
)

const version = "oracle v0.3.0"

// options はサブコマンド間で共有するグローバルフラグと読み込み済みの設定です。
type options struct {
	cfgFile string
	verbose bool

	v           *viper.Viper
	cfg         *config.Config
	closeLogger func()
}

// NewRootCmd はoracleコマンドを生成します。
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "oracle",
		Short: "Lunch Oracle - an object, a reflection, a lunch",
		Long: `Lunch Oracle classifies a photo of an everyday object, asks a language model
for a lunch prophecy based on the object and your reflections, extracts a
food keyword from the prophecy and looks up nearby affordable lunch spots.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (ORACLE_*, REDIS_HOST, JWT_SECRET, provider API keys)
  3. Config file (configs/oracle.yaml or --config)
  4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.closeLogger != nil {
				opts.closeLogger()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: configs/oracle.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging)")

	root.AddCommand(
		newRunCmd(opts),
		newKeywordCmd(opts),
		newVenuesCmd(opts),
		newConfigCmd(opts),
		newServeCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// Execute はoracleコマンドを実行します。
func Execute() error {
	return NewRootCmd().Execute()
}

// load は設定を読み込み、ロガーを初期化します。
func (o *options) load(cmd *cobra.Command) error {
	o.v = viper.New()
	cfg, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return err
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	_, o.closeLogger = logging.New(cfg.Log, cmd.ErrOrStderr())
	o.cfg = cfg
	return nil
}

// Package cli implements the wsdlmodel command line.
package cli

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fiorix/wsdlmodel/internal/config"
	"github.com/fiorix/wsdlmodel/internal/logging"
	"github.com/fiorix/wsdlmodel/wsdl"
	"github.com/fiorix/wsdlmodel/wsdlgo"
)

// Version is set at build time.
var Version = "tip"

// NewRootCmd returns the wsdlmodel command tree bound to a fresh
// configuration.
func NewRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string
	root := &cobra.Command{
		Use:           "wsdlmodel",
		Short:         "Build the semantic model of a WSDL document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(v, cfgFile); err != nil {
				return err
			}
			err := logging.Setup(v.GetString(config.LogLevel), v.GetBool(config.LogPretty))
			if err != nil {
				return err
			}
			wsdl.SetLogger(log.Logger)
			wsdlgo.SetLogger(log.Logger)
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wsdlmodel.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("pretty", true, "use pretty logging instead of JSON")
	flags.Bool("insecure", false, "accept invalid https certificates")
	flags.Duration("timeout", 30*time.Second, "timeout for fetching remote documents")
	bind(v, config.LogLevel, flags.Lookup("log-level"))
	bind(v, config.LogPretty, flags.Lookup("pretty"))
	bind(v, config.HTTPInsecure, flags.Lookup("insecure"))
	bind(v, config.HTTPTimeout, flags.Lookup("timeout"))

	root.AddCommand(
		newGenerateCmd(v),
		newModelCmd(v),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	cobra.CheckErr(NewRootCmd().Execute())
}

func bind(v *viper.Viper, key string, flag *pflag.Flag) {
	cobra.CheckErr(v.BindPFlag(key, flag))
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fiorix/wsdlmodel/internal/config"
	"github.com/fiorix/wsdlmodel/wsdl"
)

func newModelCmd(v *viper.Viper) *cobra.Command {
	var src, dst string
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Dump the semantic model of a WSDL document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := v.GetString(config.ModelFormat)
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unknown format %q", format)
			}
			d, err := readDefinition(cmd.Context(), src, cmd.InOrStdin(), httpClient(v))
			if err != nil {
				return err
			}
			w, closeFn, err := create(dst, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := dump(w, d, format); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&src, "input", "i", "", "input file, url, or '-' for stdin")
	flags.StringVarP(&dst, "output", "o", "", "output file, or '-' for stdout")
	flags.StringP("format", "f", "yaml", "output format (yaml, json)")
	bind(v, config.ModelFormat, flags.Lookup("format"))
	return cmd
}

func dump(w io.Writer, d *wsdl.Definition, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

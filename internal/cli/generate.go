package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fiorix/wsdlmodel/internal/config"
	"github.com/fiorix/wsdlmodel/wsdlgo"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	var src, dst string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go SOAP client from a WSDL document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDefinition(cmd.Context(), src, cmd.InOrStdin(), httpClient(v))
			if err != nil {
				return err
			}
			w, closeFn, err := create(dst, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			enc := wsdlgo.NewEncoder(w)
			if pkg := v.GetString(config.GeneratePackage); pkg != "" {
				enc.SetPackageName(wsdlgo.PackageName(pkg))
			}
			if err := enc.Encode(d); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&src, "input", "i", "", "input file, url, or '-' for stdin")
	flags.StringVarP(&dst, "output", "o", "", "output file, or '-' for stdout")
	flags.String("package", "", "package name of the generated code")
	bind(v, config.GeneratePackage, flags.Lookup("package"))
	return cmd
}

package cli

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/fiorix/wsdlmodel/internal/config"
	"github.com/fiorix/wsdlmodel/wsdl"
)

// httpClient returns the client used to fetch remote documents.
func httpClient(v *viper.Viper) *http.Client {
	cli := &http.Client{Timeout: v.GetDuration(config.HTTPTimeout)}
	if v.GetBool(config.HTTPInsecure) {
		cli.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return cli
}

// readDefinition builds the model of the document at src: a file, an
// http(s) URL, or stdin when src is empty or "-".
func readDefinition(ctx context.Context, src string, stdin io.Reader, cli *http.Client) (*wsdl.Definition, error) {
	if src == "" || src == "-" {
		return wsdl.Unmarshal(stdin)
	}
	f, err := open(ctx, src, cli)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wsdl.Unmarshal(f)
}

func open(ctx context.Context, name string, cli *http.Client) (io.ReadCloser, error) {
	u, err := url.Parse(name)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return os.Open(name)
	}
	log.Debug().Str("url", name).Msg("fetching document")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
	if err != nil {
		return nil, err
	}
	resp, err := cli.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", name, resp.Status)
	}
	return resp.Body, nil
}

// create opens the output named dst, or returns stdout when dst is
// empty or "-".
func create(dst string, stdout io.Writer) (io.Writer, func() error, error) {
	if dst == "" || dst == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

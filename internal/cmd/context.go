package cmd

import (
	"io"

	"github.com/jimezsa/jobsearch/internal/config"
	"github.com/jimezsa/jobsearch/internal/hh"
	"github.com/jimezsa/jobsearch/internal/network"
	"github.com/jimezsa/jobsearch/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

// newSource wires the hh client onto the shared transport, rotating through
// configured proxies when there are any.
func (c *Context) newSource(proxiesFlag string) (*hh.Client, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, network.DefaultBanDuration)
		if err != nil {
			return nil, err
		}
	}

	transport, err := network.NewClient(network.Options{
		Timeout: c.Config.Timeout(),
		Rotator: rotator,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, err
	}

	return hh.NewClient(transport, hh.Config{
		BaseURL: c.Config.BaseURL,
		Logger:  c.Logger,
	})
}

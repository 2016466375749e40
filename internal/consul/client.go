// Package consul registers the API process with a HashiCorp Consul agent so
// that load balancers and peers can find it through the catalog.
package consul

import (
	consulapi "github.com/hashicorp/consul/api"

	"mindful/internal/config"
)

// Client wraps the Consul API client
type Client struct {
	api *consulapi.Client
}

// NewClient creates a Consul client for cfg.Addr, authenticating with cfg.Token when set.
func NewClient(cfg config.Consul) (*Client, error) {
	apiConfig := consulapi.DefaultConfig()
	apiConfig.Address = cfg.Addr

	if cfg.Token != "" {
		apiConfig.Token = cfg.Token
	}

	client, err := consulapi.NewClient(apiConfig)
	if err != nil {
		return nil, err
	}

	return &Client{api: client}, nil
}

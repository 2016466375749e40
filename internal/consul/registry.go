package consul

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"

	"mindful/internal/config"
)

// ServiceName is the catalog name of the API process.
const ServiceName = "mindful-api"

// ServiceConfig contains configuration for service registration
type ServiceConfig struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Check   *HealthCheck
}

// HealthCheck defines health check configuration
type HealthCheck struct {
	HTTP     string
	Interval string
	Timeout  string
}

// ServiceRegistrar defines the interface for service registration
type ServiceRegistrar interface {
	Register(cfg *ServiceConfig) error
	Deregister(serviceID string) error
}

// ServiceFor describes the running API process. The health check polls GET /health.
func ServiceFor(cfg *config.Config) *ServiceConfig {
	return &ServiceConfig{
		ID:      fmt.Sprintf("%s-%s-%d", ServiceName, cfg.ServiceHost, cfg.Port),
		Name:    ServiceName,
		Address: cfg.ServiceHost,
		Port:    cfg.Port,
		Tags:    []string{"db:" + cfg.Database.Driver, "cache:" + cfg.Cache.Backend},
		Check: &HealthCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", cfg.ServiceHost, cfg.Port),
			Interval: "10s",
			Timeout:  "2s",
		},
	}
}

func registration(cfg *ServiceConfig) *consulapi.AgentServiceRegistration {
	reg := &consulapi.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Address: cfg.Address,
		Port:    cfg.Port,
		Tags:    cfg.Tags,
	}

	if cfg.Check != nil {
		reg.Check = &consulapi.AgentServiceCheck{
			HTTP:                           cfg.Check.HTTP,
			Interval:                       cfg.Check.Interval,
			Timeout:                        cfg.Check.Timeout,
			DeregisterCriticalServiceAfter: "1m",
		}
	}
	return reg
}

// Register registers a service with Consul
func (c *Client) Register(cfg *ServiceConfig) error {
	if err := c.api.Agent().ServiceRegister(registration(cfg)); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	return nil
}

// Deregister removes a service from Consul
func (c *Client) Deregister(serviceID string) error {
	if err := c.api.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}

	return nil
}

// Announce registers svc through r after dropping any instance left under the
// same ID by a previous crash.
func Announce(r ServiceRegistrar, svc *ServiceConfig) error {
	_ = r.Deregister(svc.ID)
	return r.Register(svc)
}

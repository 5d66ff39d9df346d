package config

import (
	"strings"
	"time"
)

// Environment is a release channel.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	UAT         Environment = "uat"
	Beta        Environment = "beta"
	Production  Environment = "production"
)

// Environments lists every known release channel.
var Environments = []Environment{Development, Staging, UAT, Beta, Production}

// EnvConfig is what a release channel pins down.
type EnvConfig struct {
	APIBaseURL  string
	Environment Environment
	AppName     string
	Version     string
}

var envConfigs = map[Environment]EnvConfig{
	Development: {
		APIBaseURL:  "http://localhost:3000/api",
		Environment: Development,
		AppName:     "OrderUp Dev",
		Version:     "1.0.0-dev",
	},
	Staging: {
		APIBaseURL:  "https://api-staging.orderup.com/api",
		Environment: Staging,
		AppName:     "OrderUp Staging",
		Version:     "1.0.0-staging",
	},
	UAT: {
		APIBaseURL:  "https://api-uat.orderup.com/api",
		Environment: UAT,
		AppName:     "OrderUp UAT",
		Version:     "1.0.0-uat",
	},
	Beta: {
		APIBaseURL:  "https://api-beta.orderup.com/api",
		Environment: Beta,
		AppName:     "OrderUp Beta",
		Version:     "1.0.0-beta",
	},
	Production: {
		APIBaseURL:  "https://api.orderup.com/api",
		Environment: Production,
		AppName:     "OrderUp",
		Version:     "1.0.0",
	},
}

// ResolveEnvironment maps a release channel to an environment.
// Anything unrecognised, including the empty channel, is development.
func ResolveEnvironment(channel string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(channel))) {
	case Production:
		return Production
	case Beta:
		return Beta
	case UAT:
		return UAT
	case Staging:
		return Staging
	}
	return Development
}

// For returns the settings of env.
func For(env Environment) EnvConfig {
	if c, ok := envConfigs[env]; ok {
		return c
	}
	return envConfigs[Development]
}

// Endpoints are the REST paths relative to the API base URL.
type Endpoints struct {
	Login   string
	Logout  string
	Refresh string

	Dashboard string

	Orders         string
	OrderDetails   string
	CreatePicklist string

	Picklists            string
	PicklistDetails      string
	UpdatePicklistItem   string
	MarkPicklistComplete string

	Locations string

	Packing     string
	Fulfillment string
}

// DefaultEndpoints is shared by every environment.
var DefaultEndpoints = Endpoints{
	Login:   "/auth/login",
	Logout:  "/auth/logout",
	Refresh: "/auth/refresh",

	Dashboard: "/dashboard",

	Orders:         "/orders",
	OrderDetails:   "/orders",
	CreatePicklist: "/orders/create-picklist",

	Picklists:            "/picklists",
	PicklistDetails:      "/picklists",
	UpdatePicklistItem:   "/picklists/items",
	MarkPicklistComplete: "/picklists/complete",

	Locations: "/locations",

	Packing:     "/packing",
	Fulfillment: "/fulfillment",
}

const (
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 20
)

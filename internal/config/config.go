// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// BaseURL is the externally reachable scheme://host prefix the device
	// uses to call back into this server.
	BaseURL string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// Secret is the shared security key embedded in every challenge.
	Secret string

	// TimeLimit is the capture time limit, in seconds, embedded in every challenge.
	TimeLimit int

	// Account is the paired device's server account.
	Account string

	// SerialNumber is the paired device's serial number.
	SerialNumber string

	// VendorCode is the paired device's vendor code.
	VendorCode string

	// VendorKey is the paired device's vendor key.
	VendorKey string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:8080", "public base URL for device callbacks")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Secret, "s", "helloWorld", "shared security key sent in challenges")
	flag.IntVar(&options.TimeLimit, "t", 10, "capture time limit in seconds")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
//
// The device identity fields (AC, SN, VC, VKEY) are read from the
// environment only. They are deliberately not validated here: a missing
// field surfaces as a device-not-found condition on first use, not as a
// startup failure.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	} else if port := os.Getenv("PORT"); port != "" {
		options.Port = ":" + port
	}

	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	if secret := os.Getenv("SECRET"); secret != "" {
		options.Secret = secret
	}

	if limit := os.Getenv("TIME_LIMIT"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			options.TimeLimit = v
		}
	}

	// The device identity is provisioned through the environment only.
	options.Account = os.Getenv("AC")
	options.SerialNumber = os.Getenv("SN")
	options.VendorCode = os.Getenv("VC")
	options.VendorKey = os.Getenv("VKEY")

	return options
}

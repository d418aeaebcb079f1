package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TeamMember is one entry of the Admin service roster.
type TeamMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Config struct {
	// HTTP server
	Port string

	// Shared database
	SQLiteDBPath string

	// AMQP log pipeline. An empty URL means services write log entries
	// directly to the database instead of publishing them.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Admin roster, "First Last,First Last". Kept out of the database on
	// purpose; the roster is deployment configuration, not data.
	TeamMembers string

	LogLevel string
}

// Load reads configuration from the environment. defaultPort is the
// service's conventional port (each binary passes its own).
func Load(defaultPort string) *Config {
	return &Config{
		Port:         getEnv("PORT", defaultPort),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/costmanager.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "costmanager"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "request_logs"),

		TeamMembers: getEnv("TEAM_MEMBERS", "Ofir Nesher,Asaf Arusi"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns a combined error when
// anything is off.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty")
	} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				problems = append(problems, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := c.TeamRoster(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// TeamRoster parses TeamMembers into the roster served by /api/about.
func (c *Config) TeamRoster() ([]TeamMember, error) {
	var roster []TeamMember
	for _, raw := range strings.Split(c.TeamMembers, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		first, last, found := strings.Cut(raw, " ")
		if !found {
			return nil, fmt.Errorf("invalid team member '%s': expected 'First Last'", raw)
		}
		roster = append(roster, TeamMember{
			FirstName: strings.TrimSpace(first),
			LastName:  strings.TrimSpace(last),
		})
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("team roster is empty")
	}
	return roster, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

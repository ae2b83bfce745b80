package interra

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// Connection timeouts
const (
	// defaultDialTimeout bounds opening the TCP connection.
	defaultDialTimeout = 10 * time.Second

	// defaultReadTimeout bounds waiting for one reply, echo lines included.
	defaultReadTimeout = 30 * time.Second

	// defaultWriteTimeout bounds writing and flushing one frame.
	defaultWriteTimeout = 5 * time.Second
)

// Environment variables that override stored hub settings.
const (
	EnvHost     = "TCP_IP"
	EnvPort     = "PORT"
	EnvUsername = "USERNAME"
	EnvPassword = "PASSWORD"
)

// Config holds the hub connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string

	// Zero values select the defaults.
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// WithEnv returns a copy of c with every setting present in the environment
// replaced by its environment value.
func (c Config) WithEnv(lookup func(string) (string, bool)) Config {
	override := func(dst *string, key string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	override(&c.Host, EnvHost)
	override(&c.Port, EnvPort)
	override(&c.Username, EnvUsername)
	override(&c.Password, EnvPassword)
	return c
}

// Validate checks that every setting is present and the port is a valid
// TCP port.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "host")
	}
	if strings.TrimSpace(c.Port) == "" {
		missing = append(missing, "port")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", device.ErrConfiguration, strings.Join(missing, ", "))
	}

	port, err := strconv.ParseUint(strings.TrimSpace(c.Port), 10, 16)
	if err != nil || port == 0 {
		return fmt.Errorf("%w: port %q is not in 1-65535", device.ErrConfiguration, c.Port)
	}
	return nil
}

// Address returns host:port.
func (c Config) Address() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

func (c Config) withDefaults() Config {
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	return c
}

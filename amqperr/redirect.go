package amqperr

import (
	"os"
	"strconv"
)

// ConnectionRedirectInfo carries the structured info fields a
// connection-redirect error reports: the container's new location.
type ConnectionRedirectInfo struct {
	Hostname    string
	NetworkHost string
	Port        uint16
}

// NewConnectionRedirect builds an amqp:connection:redirect error carrying
// info. Unlike the fixed conditions, each call produces a distinct value
// since the info differs per redirect target.
func NewConnectionRedirect(info ConnectionRedirectInfo) *Error {
	return &Error{
		Condition:   ErrConnectionRedirect.Condition,
		Description: ErrConnectionRedirect.Description,
		Info: map[string]any{
			"hostname":     info.Hostname,
			"network-host": info.NetworkHost,
			"port":         info.Port,
		},
	}
}

// ConnectionRedirectInfoFromEnv reads AMQP_CONNECTION_REDIRECT_HOST_NAME,
// AMQP_CONNECTION_REDIRECT_NETWORK_HOST, and AMQP_CONNECTION_REDIRECT_PORT.
func ConnectionRedirectInfoFromEnv() ConnectionRedirectInfo {
	return ConnectionRedirectInfo{
		Hostname:    os.Getenv("AMQP_CONNECTION_REDIRECT_HOST_NAME"),
		NetworkHost: os.Getenv("AMQP_CONNECTION_REDIRECT_NETWORK_HOST"),
		Port:        parsePort(os.Getenv("AMQP_CONNECTION_REDIRECT_PORT")),
	}
}

// LinkRedirectInfo carries the structured info fields a link-redirect error
// reports: the terminus's new location and address.
type LinkRedirectInfo struct {
	Hostname    string
	NetworkHost string
	Port        uint16
	Address     string
}

// NewLinkRedirect builds an amqp:link:redirect error carrying info.
func NewLinkRedirect(info LinkRedirectInfo) *Error {
	return &Error{
		Condition:   ErrLinkRedirect.Condition,
		Description: ErrLinkRedirect.Description,
		Info: map[string]any{
			"hostname":     info.Hostname,
			"network-host": info.NetworkHost,
			"port":         info.Port,
			"address":      info.Address,
		},
	}
}

// LinkRedirectInfoFromEnv reads AMQP_LINK_REDIRECT_HOST_NAME,
// AMQP_LINK_REDIRECT_NETWORK_HOST, AMQP_LINK_REDIRECT_PORT, and
// AMQP_LINK_REDIRECT_ADDRESS.
func LinkRedirectInfoFromEnv() LinkRedirectInfo {
	return LinkRedirectInfo{
		Hostname:    os.Getenv("AMQP_LINK_REDIRECT_HOST_NAME"),
		NetworkHost: os.Getenv("AMQP_LINK_REDIRECT_NETWORK_HOST"),
		Port:        parsePort(os.Getenv("AMQP_LINK_REDIRECT_PORT")),
		Address:     os.Getenv("AMQP_LINK_REDIRECT_ADDRESS"),
	}
}

func parsePort(s string) uint16 {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0
	}
	return uint16(n)
}

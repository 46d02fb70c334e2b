package rc

import (
	"net"
	"strconv"
	"strings"

	"vlcrc/internal/errors"
)

// ServerAddress is a validated RC endpoint.
type ServerAddress struct {
	Host string
	Port int
}

// ParseServerAddress parses HOST:PORT. The port follows the last colon;
// a bracketed host such as [::1] has its brackets removed. The host must
// not be empty.
func ParseServerAddress(spec string) (ServerAddress, error) {
	i := strings.LastIndex(spec, ":")
	if i < 0 {
		return ServerAddress{}, errors.NewConfigError("missing :port", spec, errors.InvalidServerAddress, nil)
	}
	host, portText := spec[:i], spec[i+1:]
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}

	if host == "" {
		return ServerAddress{}, errors.NewConfigError("missing host", spec, errors.InvalidServerAddress, nil)
	}

	port, err := strconv.Atoi(portText)
	if err != nil {
		return ServerAddress{}, errors.NewConfigError("port is not a number", spec, errors.InvalidServerAddress, err)
	}
	if port <= 0 || port > 65535 {
		return ServerAddress{}, errors.NewConfigError("port out of range", spec, errors.InvalidServerAddress, nil)
	}
	return ServerAddress{Host: host, Port: port}, nil
}

// String formats the address for dialing, bracketing IPv6 hosts.
func (a ServerAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

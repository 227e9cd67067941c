package misc

import (
	"errors"
	"net"
)

// GetFreePort asks the kernel for an unused TCP port. Render workers bind
// their reply servers to it so several workers can share one machine.
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port

	if err := l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}

// GetLocalAddress returns the IPv4 address of the first non-loopback
// interface that is up.
func GetLocalAddress() (string, error) {
	networkInterfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	for _, networkInterface := range networkInterfaces {
		if networkInterface.Flags&net.FlagLoopback != 0 || networkInterface.Flags&net.FlagUp == 0 {
			continue
		}
		addresses, err := networkInterface.Addrs()
		if err != nil {
			return "", err
		}
		for _, address := range addresses {
			if ipNet, ok := address.(*net.IPNet); ok {
				if ip4 := ipNet.IP.To4(); len(ip4) == net.IPv4len {
					return ip4.String(), nil
				}
			}
		}
	}

	return "", errors.New("no non-loopback interface with an IPv4 address found")
}

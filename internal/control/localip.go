package control

import (
	"net"
)

// LocalIPForTarget determines the local IPv4 address the operating system
// would use to reach targetIP. It connects a UDP socket to the target's
// discard port without sending anything and reads back the chosen local
// address.
func LocalIPForTarget(targetIP string) (string, error) {
	conn, err := net.Dial("udp4", net.JoinHostPort(targetIP, "9"))
	if err != nil {
		return "", NewLocalAddrError(targetIP, err)
	}
	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || localAddr.IP == nil {
		return "", NewLocalAddrError(targetIP, nil)
	}

	return localAddr.IP.String(), nil
}

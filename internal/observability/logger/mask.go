package logger

import (
	"net"
	"strconv"
	"strings"
)

// Punch records carry IP-derived locations. Log lines keep enough of the
// value to correlate requests without storing a precise position.

// MaskIP truncates an IP address: IPv4 keeps the first two octets, IPv6
// keeps the first two groups.
func MaskIP(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	ip := net.ParseIP(value)
	if ip == nil {
		return "****"
	}
	if v4 := ip.To4(); v4 != nil {
		parts := strings.Split(v4.String(), ".")
		return parts[0] + "." + parts[1] + ".*.*"
	}
	groups := strings.Split(ip.String(), ":")
	if len(groups) < 2 {
		return "****"
	}
	return groups[0] + ":" + groups[1] + "::*"
}

// MaskCoordinates rounds a latitude/longitude pair to two decimal
// places, roughly city-level precision.
func MaskCoordinates(lat, lng float64) string {
	return strconv.FormatFloat(round2(lat), 'f', 2, 64) +
		"," + strconv.FormatFloat(round2(lng), 'f', 2, 64)
}

func round2(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*100+0.5)) / 100
	}
	return float64(int64(v*100-0.5)) / 100
}

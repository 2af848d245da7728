package ipaddresses

import (
	"fmt"
	"strconv"
	"strings"
)

const errInvalidIPAddrFmt = "invalid IP address: %s"
const errInvalidCIDRFmt = "invalid CIDR notation: %s"

// ParseIPAddress is a utility function that converts an IPv4 address
// from octet notation (*.*.*.*) to its 32-bit unsigned integer value.
func ParseIPAddress(ipAddr string) (ip uint32, err error) {
	octets := strings.Split(ipAddr, ".")
	if len(octets) != 4 {
		err = fmt.Errorf(errInvalidIPAddrFmt, ipAddr)
		return
	}

	for _, octet := range octets {
		var b int

		b, err = strconv.Atoi(octet)
		if err != nil || b < 0 || b > 255 {
			err = fmt.Errorf(errInvalidIPAddrFmt, ipAddr)
			return
		}

		ip <<= 8
		ip |= uint32(b)
	}

	return ip, nil
}

// ParseCIDR converts a CIDR notation into a 32-bit unsigned integer
// prefix of an IP address space and its corresponding mask.
func ParseCIDR(cidr string) (prefix uint32, mask uint32, err error) {
	splitted := strings.Split(cidr, "/")
	if len(splitted) != 2 {
		err = fmt.Errorf(errInvalidCIDRFmt, cidr)
		return
	}

	ipAddr, suffix := splitted[0], splitted[1]
	ip, err := ParseIPAddress(ipAddr)
	if err != nil {
		err = fmt.Errorf(errInvalidCIDRFmt, cidr)
		return
	}

	bits, err := strconv.Atoi(suffix)
	if err != nil || bits < 0 || bits > 32 {
		err = fmt.Errorf(errInvalidCIDRFmt, cidr)
		return
	}

	if bits == 0 {
		return 0, 0, nil
	}

	mask = uint32(0xffffffff) << uint32(32-bits)
	prefix = ip & mask
	return
}

// ToOctets converts a 32-bit unsigned integer into a readable string in "*.*.*.*" format.
func ToOctets(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip))
}

// Normalize returns the canonical form of a CIDR string: host bits outside
// the prefix cleared, octets without leading zeros. The cloud provider
// rejects IP set entries whose host bits are set, so addresses are
// normalized before they are placed in a descriptor.
func Normalize(cidr string) (normalized string, err error) {
	prefix, _, err := ParseCIDR(cidr)
	if err != nil {
		return
	}

	bits := strings.Split(cidr, "/")[1]
	normalized = ToOctets(prefix) + "/" + strings.TrimLeft(bits, "0")
	if strings.HasSuffix(normalized, "/") {
		normalized += "0"
	}
	return
}

// ValidateList checks every entry of a CIDR list, reporting the first
// malformed entry.
func ValidateList(cidrs []string) error {
	for _, c := range cidrs {
		if _, _, err := ParseCIDR(c); err != nil {
			return err
		}
	}
	return nil
}

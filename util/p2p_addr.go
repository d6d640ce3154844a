// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/fault"
)

// ParseHostPort - parse host:port  return version(ip4/ip6), ip, port, error
func ParseHostPort(hostPort string) (string, string, string, error) {
	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return "", "", "", err
	}
	ip := strings.Trim(host, " ")
	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return "", "", "", err
	}
	if numericPort < 1 || numericPort > 65535 {
		return "", "", "", fault.InvalidPortNumber
	}
	netIP := net.ParseIP(ip)
	if nil == netIP {
		return "", "", "", fault.InvalidIpAddress
	}
	ver := "ip6"
	if nil != netIP.To4() {
		ver = "ip4"
	}
	return ver, ip, strconv.Itoa(numericPort), nil
}

// DualStackAddrToIPV4IPV6 - expand "*:port" into 0.0.0.0:port and
// [::]:port, duplicates are merged and order is kept
func DualStackAddrToIPV4IPV6(ipPorts []string) []string {
	result := []string{}
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			result = append(result, s)
		}
	}
	for _, ipPort := range ipPorts {
		sep := strings.Split(ipPort, ":")
		if 2 == len(sep) && "*" == sep[0] {
			add("0.0.0.0:" + sep[1])
			add("[::]:" + sep[1])
		} else {
			add(ipPort)
		}
	}
	return result
}

// ListenMultiaddrs - listen addresses as multiaddrs
//
// entries starting with "/" are taken as multiaddrs, anything else is
// host:port (with "*" for both stacks) and listens on TCP and QUIC
func ListenMultiaddrs(listen []string) ([]ma.Multiaddr, error) {
	result := []ma.Multiaddr{}
	hostPorts := []string{}
	for _, l := range listen {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "/") {
			addr, err := ma.NewMultiaddr(l)
			if nil != err {
				return nil, fault.InvalidPeerAddress
			}
			result = append(result, addr)
			continue
		}
		hostPorts = append(hostPorts, l)
	}

	for _, hostPort := range DualStackAddrToIPV4IPV6(hostPorts) {
		ver, ip, port, err := ParseHostPort(hostPort)
		if nil != err {
			return nil, err
		}
		for _, format := range []string{"/%s/%s/tcp/%s", "/%s/%s/udp/%s/quic-v1"} {
			addr, err := ma.NewMultiaddr(fmt.Sprintf(format, ver, ip, port))
			if nil != err {
				return nil, err
			}
			result = append(result, addr)
		}
	}

	if 0 == len(result) {
		return nil, fault.NoListenAddrs
	}
	return result, nil
}

// PrintMaAddrs - one address per line
func PrintMaAddrs(addrs []ma.Multiaddr) string {
	var b strings.Builder
	for _, addr := range addrs {
		b.WriteString(addr.String())
		b.WriteString("\n")
	}
	return b.String()
}

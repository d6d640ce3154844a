// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodes

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"
	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/splash-network/splashd/fault"
)

const (
	resolvConf = "/etc/resolv.conf"

	// nameservers tried, as resolv.conf
	maximumServers = 3

	// re-fetch interval when the zone gives no shorter TTL
	defaultInterval = 1 * time.Hour
)

// Lookuper - resolve a nodes domain to bootstrap addresses
type Lookuper interface {
	Lookup(domain string) ([]ma.Multiaddr, error)
}

type lookuper struct {
	log *logger.L
	f   func(string) ([]string, error)
}

// NewLookuper - f fetches the TXT records of a name
func NewLookuper(log *logger.L, f func(string) ([]string, error)) Lookuper {
	return &lookuper{
		log: log,
		f:   f,
	}
}

// Lookup - query TXT records and keep the valid addresses
func (l *lookuper) Lookup(domain string) ([]ma.Multiaddr, error) {
	log := l.log
	if "" == domain {
		log.Error("invalid node domain")
		return nil, fault.InvalidNodeDomain
	}

	txts, err := l.f(domain)
	if nil != err {
		log.Errorf("lookup TXT record error: %s", err)
		return nil, err
	}

	result := make([]ma.Multiaddr, 0, len(txts))
	for i, t := range txts {
		address, err := Parse(t)
		if nil != err {
			log.Debugf("ignore TXT[%d]: %q  error: %s", i, t, err)
			continue
		}
		log.Infof("result[%d]: %s", i, address)
		result = append(result, address)
	}
	return result, nil
}

// TXT - fetch TXT records from the configured nameservers, falling back
// to the system resolver
func TXT(domain string) ([]string, error) {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if nil != err || 0 == len(conf.Servers) {
		return net.LookupTXT(domain)
	}

	servers := conf.Servers
	if len(servers) > maximumServers {
		servers = servers[:maximumServers]
	}

	for _, server := range servers {
		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(dns.Fqdn(domain), dns.TypeTXT)

		r, _, err := c.Exchange(&msg, s)
		if nil != err || dns.RcodeSuccess != r.Rcode {
			continue
		}

		texts := []string{}
		for _, rr := range r.Answer {
			if t, ok := rr.(*dns.TXT); ok {
				texts = append(texts, strings.Join(t.Txt, ""))
			}
		}
		return texts, nil
	}
	return net.LookupTXT(domain)
}

// Interval - time until the nodes domain should be fetched again, from
// the TTL the nameserver reports
func Interval(domain string, log *logger.L) time.Duration {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if nil != err {
		log.Warnf("reading %s error: %s", resolvConf, err)
		return defaultInterval
	}

	servers := conf.Servers
	if len(servers) > maximumServers {
		servers = servers[:maximumServers]
	}

	for _, server := range servers {
		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(dns.Fqdn(domain), dns.TypeTXT)

		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			log.Debugf("exchange with dns server %q error: %s", s, err)
			continue
		}
		if ttl := minimumTTL(r.Answer); ttl > 0 {
			d := time.Duration(ttl) * time.Second
			if d < defaultInterval {
				return d
			}
			return defaultInterval
		}
	}
	return defaultInterval
}

func minimumTTL(rrs []dns.RR) uint32 {
	ttl := uint32(0)
	for _, rr := range rrs {
		t := rr.Header().Ttl
		if 0 == ttl || (t > 0 && t < ttl) {
			ttl = t
		}
	}
	return ttl
}

// Expand - replace /dnsaddr/ entries by the addresses they publish,
// other addresses are returned unchanged
func Expand(ctx context.Context, resolver *madns.Resolver, addresses []ma.Multiaddr, log *logger.L) []ma.Multiaddr {
	if nil == resolver {
		resolver = madns.DefaultResolver
	}

	result := make([]ma.Multiaddr, 0, len(addresses))
	for _, address := range addresses {
		if !IsDNSAddr(address) {
			result = append(result, address)
			continue
		}
		resolved, err := resolver.Resolve(ctx, address)
		if nil != err {
			log.Warnf("resolve: %s  error: %s", address, err)
			continue
		}
		result = append(result, resolved...)
	}
	return result
}

// IsDNSAddr - true for a /dnsaddr/ address that must be resolved
func IsDNSAddr(address ma.Multiaddr) bool {
	_, err := address.ValueForProtocol(ma.P_DNSADDR)
	return nil == err
}

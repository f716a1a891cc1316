package geoip

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Locator resolves a client IP to a human-readable place
type Locator interface {
	Locate(ip string) string
}

// Service looks places up in a MaxMind City database
type Service struct {
	cityReader *geoip2.Reader
	lang       string
}

// NewService opens the .mmdb City database at path. Place names are returned in
// lang when the database has them, else in English.
func NewService(path, lang string) (*Service, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open city database: %w", err)
	}
	return &Service{cityReader: reader, lang: lang}, nil
}

// Close releases the database
func (s *Service) Close() {
	if s.cityReader != nil {
		s.cityReader.Close()
	}
}

// Locate returns "City, Country" for ip, or "" when the IP is unknown, private
// or unparseable
func (s *Service) Locate(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() {
		return ""
	}

	record, err := s.cityReader.City(parsed)
	if err != nil {
		return ""
	}

	city := s.name(record.City.Names)
	country := s.name(record.Country.Names)
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case country != "":
		return country
	default:
		return record.Country.IsoCode
	}
}

func (s *Service) name(names map[string]string) string {
	if n, ok := names[s.lang]; ok && n != "" {
		return n
	}
	return names["en"]
}

// Noop is a Locator that never knows where an IP is
type Noop struct{}

// Locate implements Locator
func (Noop) Locate(string) string { return "" }

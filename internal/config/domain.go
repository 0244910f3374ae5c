package config

// DomainConfig holds per-domain query overrides.
// These map directly onto CDX index query parameters, so they narrow what
// the index returns rather than filtering client-side.
type DomainConfig struct {
	// Limit caps the number of rows requested from the index.
	// Zero means no cap.
	Limit int `yaml:"limit,omitempty"`

	// From restricts captures to those at or after this CDX timestamp
	// (yyyyMMddhhmmss, prefixes such as "2020" allowed).
	From string `yaml:"from,omitempty"`

	// To restricts captures to those at or before this CDX timestamp.
	To string `yaml:"to,omitempty"`
}

// File represents the structure of the .waybackcrawl configuration file.
type File struct {
	// Domains maps domain names to their query overrides.
	Domains map[string]DomainConfig `yaml:"domains,omitempty"`

	// Defaults contains overrides applied to every domain unless a
	// domain-specific entry overrides them.
	Defaults DomainConfig `yaml:"defaults,omitempty"`
}

// GetDomainConfig returns the effective configuration for a domain:
// the defaults merged with the domain-specific entry, non-zero fields
// of the entry winning.
func (cf *File) GetDomainConfig(domain string) DomainConfig {
	result := cf.Defaults

	if dc, ok := cf.Domains[domain]; ok {
		if dc.Limit != 0 {
			result.Limit = dc.Limit
		}
		if dc.From != "" {
			result.From = dc.From
		}
		if dc.To != "" {
			result.To = dc.To
		}
	}

	return result
}

// Package main provides the entry point for the WaybackCrawl CLI.
//
// WaybackCrawl queries the Wayback Machine CDX index for every archived
// URL of a domain and sorts the results into categories that matter
// during reconnaissance: JavaScript files, API endpoints, admin panels,
// redirect parameters, and exposed configuration files.
//
// Usage:
//
//	waybackcrawl scan <domain>
//	waybackcrawl scan example.com other.example
//
// See --help for all available options.
package main

// main is the entry point for WaybackCrawl.
func main() {
	Execute()
}

// Package cdx provides a client for the Wayback Machine CDX index API.
// It fetches the list of archived original URLs for a domain and
// deduplicates them before handing them to the classifier.
package cdx

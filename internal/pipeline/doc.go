// Package pipeline orchestrates the scan of a domain as an ordered
// sequence of steps. Each step receives the accumulated scan report and
// adds to it: fetching archived URLs from the CDX index, then classifying
// them into categories. A batch processor runs the pipeline over multiple
// domains concurrently.
package pipeline

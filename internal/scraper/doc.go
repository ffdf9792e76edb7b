// Package scraper fetches monthly expense disclosure pages from the publication portal.
//
// Each period is published as a static HTML file named YYYYMM.htm. The scraper issues a
// single bounded-timeout GET per period, decodes the page to UTF-8 using the declared
// character set, and reports missing or unreachable pages as ErrUnavailable so callers
// can skip the period instead of failing the run.
package scraper

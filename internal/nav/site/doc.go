// Package site holds the pages served to the router. Pages are loaded from
// a directory of HTML files and kept in memory.
package site

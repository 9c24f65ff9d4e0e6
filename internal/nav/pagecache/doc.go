// Package pagecache is the bounded store of fetched page fragments.
//
// Eviction is first in, first out by insertion. Unlike an LRU, neither Get
// nor overwriting a key below capacity moves it to the back of the queue.
package pagecache

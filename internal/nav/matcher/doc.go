// Package matcher compiles route patterns and normalizes paths.
//
// Patterns are made of literal text, ":name" placeholders that capture one
// segment, and "*" wildcards that capture the rest of the path:
//
//	m := matcher.MustCompile("/users/:id/posts/:postId")
//	params, ok := m.Match("/users/42/posts/7/")
//	// ok == true, params == [{id 42} {postId 7}]
//
// Normalize is also the cache key function: "/about/" and "/about" map to
// the same key.
package matcher

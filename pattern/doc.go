// Package pattern compiles route patterns into anchored regular expressions.
//
// A pattern is literal text interleaved with placeholder blocks:
//
//	[i:id]        digits, captured as "id"
//	[a:name]      alphanumeric
//	[h:hash]      hexadecimal
//	[s:slug]      alphanumeric plus "_" and "-"
//	[:segment]    one path segment, the default class
//	[*]  [**:it]  the rest of the path, lazy and greedy
//	[get|post:x]  any other type is used verbatim
//
// A trailing "?" makes a block optional together with the "/" or "." right
// before it. Literal text is escaped, so route patterns never need regexp
// quoting; callers that want a raw expression use CompileVerbatim.
//
// Compilation is memoized through Cache, keyed by the full pattern text.
package pattern

package pattern

import "strings"

// Block is a single placeholder in a route pattern: an optional leading
// separator ("/" or "."), a bracketed type and capture name, and an optional
// trailing "?" marking the block and its separator optional.
//
// From "/posts/[i:id]/[s:slug]?":
//
//	{Sep: "/", Type: "i", Name: "id"}
//	{Sep: "/", Type: "s", Name: "slug", Optional: true}
type Block struct {
	Sep      string // leading "/" or ".", folded into the block; "" when absent
	Type     string // text before ":"; "" selects the default segment class
	Name     string // capture name; "" for unnamed blocks
	Optional bool   // trailing "?"

	// Start and End delimit the block in the source pattern, separator and
	// trailing "?" included. Text outside every [Start, End) is literal.
	Start, End int
}

// Parse scans pat and returns its placeholder blocks in order. A bracket run
// that does not form a block (a second ":", no closing "]") is not special;
// it is left to the literal escaper.
func Parse(pat string) []Block {
	var blocks []Block
	for i := 0; i < len(pat); i++ {
		if pat[i] != '[' {
			continue
		}
		end := strings.IndexByte(pat[i:], ']')
		if end < 0 {
			break
		}
		end += i
		blk, ok := parseBlock(pat, i, end)
		if !ok {
			i = end
			continue
		}
		blocks = append(blocks, blk)
		i = blk.End - 1
	}
	return blocks
}

func parseBlock(pat string, open, end int) (Block, bool) {
	blk := Block{Start: open, End: end + 1}

	body := pat[open+1 : end]
	if c := strings.IndexByte(body, ':'); c >= 0 {
		blk.Type, blk.Name = body[:c], body[c+1:]
		if strings.IndexByte(blk.Name, ':') >= 0 {
			return Block{}, false
		}
	} else {
		blk.Type = body
	}

	if open > 0 && (pat[open-1] == '/' || pat[open-1] == '.') {
		blk.Sep = pat[open-1 : open]
		blk.Start--
	}
	if blk.End < len(pat) && pat[blk.End] == '?' {
		blk.Optional = true
		blk.End++
	}
	return blk, true
}

// LiteralPrefix returns the leading run of pat that every matching path must
// start with: the text before the first block, excluding the separator that
// block owns. A pattern without blocks is all prefix.
func LiteralPrefix(pat string) string {
	blocks := Parse(pat)
	if len(blocks) == 0 {
		return pat
	}
	return pat[:blocks[0].Start]
}

package hanzify

import "strings"

// Segment is one run of input letters consumed by a single table lookup.
type Segment struct {
	Text  string `json:"text"`
	Hanzi string `json:"hanzi"`
}

type trieNode struct {
	children map[rune]*trieNode
	hanzi    string
	terminal bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func (n *trieNode) insert(key, hanzi string) {
	node := n
	for _, r := range key {
		next, ok := node.children[r]
		if !ok {
			next = newTrieNode()
			node.children[r] = next
		}
		node = next
	}
	node.hanzi = hanzi
	node.terminal = true
}

// longestMatch walks the trie along s and returns the rune length and value
// of the longest key that is a prefix of s. A zero length means no key
// matches.
func (n *trieNode) longestMatch(s []rune) (int, string) {
	var (
		length int
		hanzi  string
		node   = n
	)
	for i, r := range s {
		next, ok := node.children[r]
		if !ok {
			break
		}
		node = next
		if node.terminal {
			length = i + 1
			hanzi = node.hanzi
		}
	}
	return length, hanzi
}

// segment covers word with longest-match table keys, left to right.
func segment(root *trieNode, word string) ([]Segment, error) {
	runes := []rune(word)
	segs := make([]Segment, 0, len(runes))
	for i := 0; i < len(runes); {
		n, hanzi := root.longestMatch(runes[i:])
		if n == 0 {
			return nil, &SegmentationError{Word: word, Offset: i}
		}
		segs = append(segs, Segment{Text: string(runes[i : i+n]), Hanzi: hanzi})
		i += n
	}
	return segs, nil
}

func joinHanzi(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Hanzi)
	}
	return b.String()
}

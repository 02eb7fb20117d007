package parser

import "github.com/lhaig/burn/internal/lexer"

// TokenSource produces tokens on demand. After the end of input it must
// keep returning EOF.
type TokenSource interface {
	NextToken() lexer.Token
}

// newlinePolicy decides whether NEWLINE tokens are visible to the parser
type newlinePolicy int

const (
	// heedNewlines makes newlines ordinary tokens (statement terminators)
	heedNewlines newlinePolicy = iota
	// ignoreNewlines skips newlines transparently in peek and read
	ignoreNewlines
)

// buffer is a lookahead queue over a TokenSource. Tokens are pulled
// lazily and kept until read, so any depth can be peeked.
type buffer struct {
	src    TokenSource
	queue  []lexer.Token
	policy newlinePolicy
}

func newBuffer(src TokenSource) *buffer {
	return &buffer{src: src, policy: heedNewlines}
}

// setPolicy switches the newline policy and returns a function restoring
// the previous one. Callers defer the restore so every exit path undoes it.
func (b *buffer) setPolicy(policy newlinePolicy) (restore func()) {
	prev := b.policy
	b.policy = policy
	return func() { b.policy = prev }
}

// index returns the queue position of the depth-th visible token, pulling
// from the source as needed. EOF ends the search early.
func (b *buffer) index(depth int) int {
	for i := 0; ; i++ {
		if i == len(b.queue) {
			b.queue = append(b.queue, b.src.NextToken())
		}
		tok := b.queue[i]
		if tok.Type == lexer.NEWLINE && b.policy == ignoreNewlines {
			continue
		}
		if depth == 0 || tok.Type == lexer.EOF {
			return i
		}
		depth--
	}
}

// peekN returns the depth-th visible token without consuming anything
func (b *buffer) peekN(depth int) lexer.Token {
	return b.queue[b.index(depth)]
}

// peek returns the next visible token
func (b *buffer) peek() lexer.Token {
	return b.peekN(0)
}

// read consumes and returns the next visible token. Newlines skipped under
// ignoreNewlines are consumed with it. EOF is never consumed.
func (b *buffer) read() lexer.Token {
	i := b.index(0)
	tok := b.queue[i]
	if tok.Type == lexer.EOF {
		b.queue = b.queue[i:]
		return tok
	}
	b.queue = b.queue[i+1:]
	return tok
}

// offset returns the byte offset of the next visible token
func (b *buffer) offset() int {
	return b.peek().Offset
}

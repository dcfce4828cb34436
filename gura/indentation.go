package gura

// indentTop returns the innermost active indentation width, or -1 if the
// stack is empty.
func (p *parser) indentTop() int {
	if len(p.indentStack) == 0 {
		return -1
	}
	return p.indentStack[len(p.indentStack)-1]
}

func (p *parser) pushIndent(level int) {
	p.indentStack = append(p.indentStack, level)
}

// popIndent removes the innermost indentation level, if any.
func (p *parser) popIndent() {
	if len(p.indentStack) > 0 {
		p.indentStack = p.indentStack[:len(p.indentStack)-1]
	}
}

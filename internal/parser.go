package internal

// parser stores parser data
type parser struct {
	current int

	state *interpreterState
}

const maxFunctionParams = 255

func newParser(state *interpreterState) *parser {
	return &parser{state: state}
}

func (p *parser) parse() {
	for !p.isAtEnd() {
		// A statement that failed to parse comes back as nil; the error
		// is already recorded so the run will not be executed.
		if st := p.declaration(); st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

func (p *parser) declaration() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseBailout); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.fn("function")
	}
	if p.match(tkVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectedClassName)

	var superclass *variableExpr
	if p.match(tkLess) {
		superclass = &variableExpr{
			name: p.consume(tkIdentifier, errExpectedSuperclassName),
		}
	}

	p.consume(tkLeftBrace, errExpectedClassBody)

	var methods []*fnStmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		methods = append(methods, p.fn("method"))
	}

	p.consume(tkRightBrace, errUnclosedClassBody)

	return &classStmt{
		name:       name,
		superclass: superclass,
		methods:    methods,
	}
}

func (p *parser) fn(kind string) *fnStmt {
	name := p.consume(tkIdentifier, errExpectedName(kind))

	p.consume(tkLeftParen, errExpectedParenName(kind))

	var params []*token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.setError(errMaxParameters, p.peek())
			}
			params = append(params, p.consume(tkIdentifier, errExpectedParamName))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, errExpectedParenParams)

	p.consume(tkLeftBrace, errExpectedBodyBrace(kind))

	return &fnStmt{
		name:   name,
		params: params,
		body:   p.block(),
	}
}

func (p *parser) varDeclaration() stmt {
	name := p.consume(tkIdentifier, errExpectedVariableName)

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}

	p.consume(tkSemicolon, errExpectedSemicolonVar)

	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkBreak) {
		return p.brk()
	}
	if p.match(tkContinue) {
		return p.cont()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars
//
//	for (init; cond; inc) body
//
// into
//
//	{ init; while (cond) body } with the while increment set to { inc; }
//
// The increment keeps its own block so that the resolver and the
// evaluator agree on scope depth whether the body finishes normally or
// through continue.
func (p *parser) forLoop() stmt {
	keyword := p.previous()

	p.consume(tkLeftParen, errExpectedParenFor)

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDeclaration()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonLoopCond)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errExpectedParenForClauses)

	body := p.statement()

	if cond == nil {
		cond = &literalExpr{value: ternBool(true)}
	}

	loop := &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
	if inc != nil {
		loop.increment = &blockStmt{
			stmts: []stmt{&exprStmt{expression: inc}},
		}
	}

	if init == nil {
		return loop
	}
	return &blockStmt{stmts: []stmt{init, loop}}
}

func (p *parser) ifStmt() stmt {
	st := &ifStmt{
		keyword: p.previous(),
	}

	p.consume(tkLeftParen, errExpectedParenIf)
	st.condition = p.expression()
	p.consume(tkRightParen, errExpectedParenIfCond)

	st.thenBranch = p.statement()
	if p.match(tkElse) {
		st.elseBranch = p.statement()
	}

	return st
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolonValue)
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	var value expr
	keyword := p.previous()
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonReturn)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) brk() stmt {
	keyword := p.previous()
	p.consume(tkSemicolon, errExpectedSemicolonBreak)
	return &breakStmt{
		keyword: keyword,
	}
}

func (p *parser) cont() stmt {
	keyword := p.previous()
	p.consume(tkSemicolon, errExpectedSemicolonContinue)
	return &continueStmt{
		keyword: keyword,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedParenWhile)
	cond := p.expression()
	p.consume(tkRightParen, errExpectedParenCond)
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      p.statement(),
	}
}

func (p *parser) block() []stmt {
	stmts := make([]stmt, 0)
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightBrace, errExpectedClosingBrace)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolonExpr)
	return &exprStmt{
		expression: expr,
	}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		if variable, isVar := expr.(*variableExpr); isVar {
			return &assignExpr{
				name:  variable.name,
				value: value,
			}
		} else if get, isGet := expr.(*getExpr); isGet {
			return &setExpr{
				object: get.object,
				name:   get.name,
				value:  value,
			}
		}

		// Reported without unwinding: the parser is not confused.
		p.state.setError(errInvalidAssignment, equal)
	}
	return expr
}

func (p *parser) or() expr {
	return p.logical(p.and, tkOr)
}

func (p *parser) and() expr {
	return p.logical(p.equality, tkAnd)
}

func (p *parser) equality() expr {
	return p.binary(p.comparison, tkEqualEqual, tkBangEqual)
}

func (p *parser) comparison() expr {
	return p.binary(p.addition, tkGreater, tkGreaterEqual, tkLess, tkLessEqual)
}

func (p *parser) addition() expr {
	return p.binary(p.multiplication, tkPlus, tkMinus)
}

func (p *parser) multiplication() expr {
	return p.binary(p.unary, tkSlash, tkStar)
}

// binary parses a left-associative chain of operands produced by next.
func (p *parser) binary(next func() expr, operators ...tokenType) expr {
	left := next()
	for p.match(operators...) {
		left = &binaryExpr{
			left:     left,
			operator: p.previous(),
			right:    next(),
		}
	}
	return left
}

// logical is binary for the short-circuiting operators.
func (p *parser) logical(next func() expr, operator tokenType) expr {
	left := next()
	for p.match(operator) {
		left = &logicalExpr{
			left:     left,
			operator: p.previous(),
			right:    next(),
		}
	}
	return left
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for {
		if p.match(tkLeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectedProp)
			expr = &getExpr{
				object: expr,
				name:   name,
			}
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.state.setError(errMaxArguments, p.peek())
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, errExpectedParenArgs)
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(tkFalse) {
		return &literalExpr{value: ternBool(false)}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: ternBool(true)}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkSuper) {
		keyword := p.previous()
		p.consume(tkDot, errExpectedDotSuper)
		return &superExpr{
			keyword: keyword,
			method:  p.consume(tkIdentifier, errExpectedSuperMethod),
		}
	}
	if p.match(tkThis) {
		return &thisExpr{keyword: p.previous()}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(errExpectedExpr, p.peek())
	return nil
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, token := range tokens {
		if p.check(token) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}

		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn, tkBreak, tkContinue:
			return
		default:
		}

		p.advance()
	}
}

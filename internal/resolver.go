package internal

import "fmt"

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration finished (defined) or is
// still being initialized (declared only).
type scope map[string]bool

// resolver computes, for every local variable, this and super reference,
// how many frames separate the use from the definition. Globals are
// never pushed, so references to them stay unresolved and are looked up
// by name at run time.
type resolver struct {
	state  *interpreterState
	locals map[expr]int

	scopes          []scope
	currentFunction functionType
	currentClass    classType

	// initializing is the global whose initializer is being resolved.
	initializing string
}

func newResolver(state *interpreterState, locals map[expr]int) *resolver {
	return &resolver{
		state:  state,
		locals: locals,
	}
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s stmt) {
	switch s := s.(type) {
	case *blockStmt:
		r.beginScope()
		r.resolve(s.stmts)
		r.endScope()
	case *classStmt:
		r.resolveClass(s)
	case *varStmt:
		r.resolveVar(s)
	case *exprStmt:
		r.resolveExpr(s.expression)
	case *printStmt:
		r.resolveExpr(s.expression)
	case *fnStmt:
		r.declare(s.name)
		r.define(s.name)
		r.resolveFunction(s, fnFunction)
	case *returnStmt:
		if r.currentFunction == fnNone {
			r.state.setError(errTopLevelReturn, s.keyword)
		}
		if s.value != nil {
			if r.currentFunction == fnInitializer {
				r.state.setError(errInitializerReturn, s.keyword)
			}
			r.resolveExpr(s.value)
		}
	case *ifStmt:
		r.resolveExpr(s.condition)
		r.resolveStmt(s.thenBranch)
		if s.elseBranch != nil {
			r.resolveStmt(s.elseBranch)
		}
	case *whileStmt:
		r.resolveExpr(s.condition)
		r.resolveStmt(s.body)
		if s.increment != nil {
			r.resolveStmt(s.increment)
		}
	case *breakStmt, *continueStmt:
		// checked at run time
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

func (r *resolver) resolveVar(s *varStmt) {
	r.declare(s.name)
	if s.initializer != nil {
		if len(r.scopes) == 0 {
			r.initializing = s.name.lexeme
		}
		r.resolveExpr(s.initializer)
		r.initializing = ""
	}
	r.define(s.name)
}

func (r *resolver) resolveClass(s *classStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() {
		r.currentClass = enclosingClass
	}()

	r.declare(s.name)
	r.define(s.name)

	if s.superclass != nil {
		if s.superclass.name.lexeme == s.name.lexeme {
			r.state.setError(errInheritFromSelf, s.superclass.name)
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.superclass)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range s.methods {
		declaration := fnMethod
		if method.name.lexeme == "init" {
			declaration = fnInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()

	if s.superclass != nil {
		r.endScope()
	}
}

// resolveFunction resolves parameters and body in one scope, matching
// the single frame a call creates.
func (r *resolver) resolveFunction(fn *fnStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() {
		r.currentFunction = enclosingFunction
	}()

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param)
	}
	r.resolve(fn.body)
	r.endScope()
}

func (r *resolver) resolveExpr(e expr) {
	switch e := e.(type) {
	case *variableExpr:
		if len(r.scopes) == 0 {
			if e.name.lexeme == r.initializing {
				r.state.setError(errSelfInitializer, e.name)
			}
		} else if defined, ok := r.peekScope()[e.name.lexeme]; ok && !defined {
			r.state.setError(errSelfInitializer, e.name)
		}
		r.resolveLocal(e, e.name)
	case *assignExpr:
		r.resolveExpr(e.value)
		r.resolveLocal(e, e.name)
	case *binaryExpr:
		r.resolveExpr(e.left)
		r.resolveExpr(e.right)
	case *callExpr:
		r.resolveExpr(e.callee)
		for _, argument := range e.arguments {
			r.resolveExpr(argument)
		}
	case *getExpr:
		r.resolveExpr(e.object)
	case *setExpr:
		r.resolveExpr(e.value)
		r.resolveExpr(e.object)
	case *groupingExpr:
		r.resolveExpr(e.expression)
	case *literalExpr:
	case *logicalExpr:
		r.resolveExpr(e.left)
		r.resolveExpr(e.right)
	case *unaryExpr:
		r.resolveExpr(e.right)
	case *thisExpr:
		if r.currentClass == classNone {
			r.state.setError(errThisOutsideClass, e.keyword)
			return
		}
		r.resolveLocal(e, e.keyword)
	case *superExpr:
		if r.currentClass == classNone {
			r.state.setError(errSuperOutsideClass, e.keyword)
			return
		} else if r.currentClass != classSubclass {
			r.state.setError(errSuperWithoutSuperclass, e.keyword)
			return
		}
		r.resolveLocal(e, e.keyword)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}

// resolveLocal records the distance to the innermost scope declaring
// name. Nothing is recorded for globals.
func (r *resolver) resolveLocal(e expr, name *token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.peekScope()
	if _, ok := current[name.lexeme]; ok {
		r.state.setError(errAlreadyDeclared, name)
	}
	current[name.lexeme] = false
}

func (r *resolver) define(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.lexeme] = true
}

package internal

import "fmt"

// formatStmt renders a statement in parenthesized prefix form
func formatStmt(s stmt) string {
	switch s := s.(type) {
	case *exprStmt:
		return fmt.Sprintf("(; %s)", formatExpr(s.expression))
	case *printStmt:
		return fmt.Sprintf("(print %s)", formatExpr(s.expression))
	case *varStmt:
		if s.initializer == nil {
			return fmt.Sprintf("(var %s)", s.name.lexeme)
		}
		return fmt.Sprintf("(var %s %s)", s.name.lexeme, formatExpr(s.initializer))
	case *blockStmt:
		return "(scope" + formatStmts(s.stmts) + ")"
	case *ifStmt:
		out := fmt.Sprintf("(if %s %s", formatExpr(s.condition), formatStmt(s.thenBranch))
		if s.elseBranch != nil {
			out += " " + formatStmt(s.elseBranch)
		}
		return out + ")"
	case *whileStmt:
		out := fmt.Sprintf("(while %s %s", formatExpr(s.condition), formatStmt(s.body))
		if s.increment != nil {
			out += " " + formatStmt(s.increment)
		}
		return out + ")"
	case *fnStmt:
		return formatFn(s)
	case *returnStmt:
		if s.value == nil {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", formatExpr(s.value))
	case *classStmt:
		out := "(class " + s.name.lexeme
		if s.superclass != nil {
			out += " < " + s.superclass.name.lexeme
		}
		for _, method := range s.methods {
			out += " " + formatFn(method)
		}
		return out + ")"
	case *breakStmt:
		return "(break)"
	case *continueStmt:
		return "(continue)"
	default:
		panic(fmt.Sprintf("reader: unhandled statement %T", s))
	}
}

func formatStmts(stmts []stmt) string {
	out := ""
	for _, s := range stmts {
		out += " " + formatStmt(s)
	}
	return out
}

func formatFn(fn *fnStmt) string {
	out := "(fn " + fn.name.lexeme + " ("
	for i, param := range fn.params {
		out += param.lexeme
		if i < len(fn.params)-1 {
			out += ", "
		}
	}
	return out + ")" + formatStmts(fn.body) + ")"
}

// formatExpr renders an expression in parenthesized prefix form
func formatExpr(e expr) string {
	switch e := e.(type) {
	case *literalExpr:
		if s, ok := e.value.(ternString); ok {
			return s.Repr()
		}
		return stringify(e.value)
	case *groupingExpr:
		return fmt.Sprintf("(group %s)", formatExpr(e.expression))
	case *unaryExpr:
		return fmt.Sprintf("(%s %s)", e.operator.lexeme, formatExpr(e.right))
	case *binaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.operator.lexeme, formatExpr(e.left), formatExpr(e.right))
	case *logicalExpr:
		return fmt.Sprintf("(%s %s %s)", e.operator.lexeme, formatExpr(e.left), formatExpr(e.right))
	case *variableExpr:
		return e.name.lexeme
	case *assignExpr:
		return fmt.Sprintf("(= %s %s)", e.name.lexeme, formatExpr(e.value))
	case *callExpr:
		out := "(call " + formatExpr(e.callee)
		for _, argument := range e.arguments {
			out += " " + formatExpr(argument)
		}
		return out + ")"
	case *getExpr:
		return fmt.Sprintf("(. %s %s)", formatExpr(e.object), e.name.lexeme)
	case *setExpr:
		return fmt.Sprintf("(.= %s %s %s)", formatExpr(e.object), e.name.lexeme, formatExpr(e.value))
	case *thisExpr:
		return "this"
	case *superExpr:
		return fmt.Sprintf("(super %s)", e.method.lexeme)
	default:
		panic(fmt.Sprintf("reader: unhandled expression %T", e))
	}
}

package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
)

//go:generate ./ast.sh

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ast Expr|Stmt")
		os.Exit(64)
	}
	var out string
	switch os.Args[1] {
	case "Stmt":
		out = generateAst("Stmt", []string{
			"Expr: expression expr",
			"Print: keyword *token, expression expr",
			"Var: name *token, initializer expr",
			"Block: stmts []stmt",
			"If: keyword *token, condition expr, thenBranch stmt, elseBranch stmt",
			"While: keyword *token, condition expr, body stmt, increment stmt",
			"Fn: name *token, params []*token, body []stmt",
			"Return: keyword *token, value expr",
			"Class: name *token, superclass *variableExpr, methods []*fnStmt",
			"Break: keyword *token",
			"Continue: keyword *token",
		})
	case "Expr":
		out = generateAst("Expr", []string{
			"Assign: name *token, value expr",
			"Binary: left expr, operator *token, right expr",
			"Call: callee expr, paren *token, arguments []expr",
			"Get: object expr, name *token",
			"Grouping: expression expr",
			"Literal: value ternValue",
			"Logical: left expr, operator *token, right expr",
			"Set: object expr, name *token, value expr",
			"Super: keyword *token, method *token",
			"This: keyword *token",
			"Unary: operator *token, right expr",
			"Variable: name *token",
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown node family %q\n", os.Args[1])
		os.Exit(64)
	}
	formatted, err := format.Source([]byte(out))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(string(formatted))
}

func generateAst(baseName string, types []string) string {
	out := "// Code generated by cmd/ast; DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "type " + strings.ToLower(baseName) + " interface {\n"
	out += "\t" + strings.ToLower(baseName) + "Node()\n"
	out += "}\n\n"
	// End base interface

	// Start structs
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	fieldArray := strings.Split(fields, ",")
	for _, field := range fieldArray {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Marker Method
	out += "func (*" + structName + ") " + strings.ToLower(baseName) + "Node() {}\n\n"
	// End Marker Method

	return out
}

package mql

import "fmt"

// Query is the root of a parsed MQL statement. Exactly one of
// FindQuery, WhereQuery or ContextQuery.
type Query interface {
	queryNode()
}

// FindQuery searches project context for a value.
// Syntax: FIND <value> IN <scope> [WHERE cond] [CONTEXT spec] [PRIORITIZE d,...]
type FindQuery struct {
	Value       Value
	Scope       string
	Condition   Condition // nil when absent
	ContextSpec string    // "" when absent
	Priority    []string
}

func (*FindQuery) queryNode() {}

// WhereQuery filters projects by a condition.
// Syntax: WHERE <condition> IN <scope> [CONTEXT spec] [PRIORITIZE d,...]
type WhereQuery struct {
	Condition   Condition
	Scope       string
	ContextSpec string
	Priority    []string
}

func (*WhereQuery) queryNode() {}

// ContextQuery retrieves context for a scope.
// Syntax: CONTEXT <scope> [WHERE cond] [CONTEXT spec] [PRIORITIZE d,...]
type ContextQuery struct {
	Scope       string
	Condition   Condition
	ContextSpec string
	Priority    []string
}

func (*ContextQuery) queryNode() {}

// CompareOp represents a comparison operator.
type CompareOp int

const (
	OpEq       CompareOp = iota // =
	OpContains                  // CONTAINS
	OpIn                        // IN (...)
	OpGt                        // >
	OpLt                        // <
	OpGte                       // >=
	OpLte                       // <=
)

func (op CompareOp) String() string {
	switch op {
	case OpContains:
		return "CONTAINS"
	case OpIn:
		return "IN"
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	default:
		return "="
	}
}

// LogicalOp represents a boolean combinator.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalOr {
		return "OR"
	}
	return "AND"
}

// Condition is a filter expression tree. Trees are strictly binary:
// every node is a Comparison leaf or a Logical with two children.
type Condition interface {
	conditionNode()
	String() string
}

// Comparison is a single field/operator/value test.
type Comparison struct {
	Field string
	Op    CompareOp
	Value Value
}

func (*Comparison) conditionNode() {}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Op, c.Value)
}

// Logical combines two conditions with AND or OR.
type Logical struct {
	Op    LogicalOp
	Left  Condition
	Right Condition
}

func (*Logical) conditionNode() {}

func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left, l.Op, l.Right)
}

// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrInvalidNode is raised when an operation receives a node that is
	// outside the node table or that has been reclaimed.
	ErrInvalidNode = errors.New("invalid node")
	// ErrUnknownVariable is raised when a variable index is outside of
	// [0..Varnum).
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrOrdering is raised when building a node whose level is not strictly
	// smaller than the level of its successors.
	ErrOrdering = errors.New("variable ordering violated")
	// ErrOperator is raised when Apply is called with an unknown operator.
	ErrOperator = errors.New("invalid operator")
	// ErrOutOfMemory is raised when there is no free node left and the node
	// table cannot be resized (see option Maxnodesize).
	ErrOutOfMemory = errors.New("unable to free memory or resize BDD")
	// ErrConfig is returned when a configuration is not valid.
	ErrConfig = errors.New("invalid configuration")
)

// fail reports a violated precondition. These are programming errors, so we
// log them and panic with an error wrapping err.
func (b *BDD) fail(err error, format string, a ...any) {
	e := fmt.Errorf("%w: %s", err, fmt.Sprintf(format, a...))
	b.log.Error("bdd precondition failed", zap.Error(e))
	panic(e)
}

// checkptr panics if n is not a valid node of b.
func (b *BDD) checkptr(n Node) {
	if !b.IsValid(n) {
		b.fail(ErrInvalidNode, "node %d", n)
	}
}

func (b *BDD) checkvar(i int) {
	if i < 0 || i >= int(b.varnum) {
		b.fail(ErrUnknownVariable, "variable %d (varnum is %d)", i, b.varnum)
	}
}

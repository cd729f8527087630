// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "go.uber.org/zap"

// CreateVariable adds a new variable at the end of the variable ordering and
// returns the node of its positive literal. The variable index is the previous
// value of Varnum.
func (b *BDD) CreateVariable() Node {
	if b.varnum >= _MAXVAR {
		b.fail(ErrUnknownVariable, "cannot create more than %d variables", _MAXVAR)
	}
	b.initref()
	return b.createVariable()
}

// CreateVariables adds k new variables and returns their positive literals.
func (b *BDD) CreateVariables(k int) []Node {
	res := make([]Node, k)
	for i := range res {
		res[i] = b.CreateVariable()
	}
	return res
}

func (b *BDD) createVariable() Node {
	level := b.varnum
	b.varnum++
	// Constants always have the highest level.
	b.setlevel(0, b.varnum)
	b.setlevel(1, b.varnum)
	v0 := b.pushref(b.makenode(level, False, True))
	v1 := b.makenode(level, True, False)
	b.popref(1)
	b.setrefcou(v0, _MAXREFCOUNT)
	b.setrefcou(v1, _MAXREFCOUNT)
	b.varset = append(b.varset, [2]Node{v0, v1})
	// the number of solutions depends on the level of the constants
	b.satcache.reset()
	b.log.Debug("new variable", zap.Int32("level", level), zap.Int("varnum", int(b.varnum)))
	return v0
}

// Ithvar returns a BDD representing the i'th variable (the expression xi). The
// requested variable must be in the range [0..Varnum), otherwise we panic with
// ErrUnknownVariable.
func (b *BDD) Ithvar(i int) Node {
	b.checkvar(i)
	return b.varset[i][0]
}

// NIthvar returns a node representing the negation of the i'th variable (the
// expression !xi). See Ithvar for further info.
func (b *BDD) NIthvar(i int) Node {
	b.checkvar(i)
	return b.varset[i][1]
}

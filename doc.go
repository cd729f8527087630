// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Binary Decision Diagrams (BDD), a data
structure used to efficiently represent Boolean functions over a set of
variables or, equivalently, sets of Boolean vectors.

# Basics

Each BDD starts with a number of variables, Varnum, declared when it is
initialized (using the function New), and more variables can be appended to
the ordering with CreateVariable. Each variable is represented by an (integer)
index in the interval [0..Varnum), called a level.

Most operations over BDD return a Node; that is the index of a "vertex" in the
node table of the BDD that includes a variable level, and the index of the low
and high branch for this node. We use the convention that 1 (respectively 0) is
the index of the constant function True (respectively False).

# Memory management

Data structures and algorithms are an adaptation of those found in the
C-library BuDDy, developed by Jorn Lind-Nielsen. Nodes are stored in a table
that also contains a hash table (the unique table) used to ensure that there is
exactly one node for each Boolean function. Nodes are reclaimed by a
mark-and-sweep garbage collector that is triggered when there is no free node
left. If the collection does not free enough nodes, the table is resized.

The garbage collector keeps the nodes with a positive reference count and all
their successors. The result of an operation is not referenced, so it can be
reclaimed by the next operation that triggers a collection. Callers must use
Reference (or Hold and Assign) on the nodes they want to keep, and Dereference
them when they are done. Nodes for variables and constants are never
reclaimed.

Operations follow the C library in their error handling: passing an invalid
node, or a variable index out of range, is a programming error and panics with
an error wrapping one of ErrInvalidNode, ErrUnknownVariable or ErrOrdering.

# Use of build tags

To enable more internal consistency checks (ordering of nodes when they are
created, dereference of unreferenced nodes) and dump the node table in the
debug log at each garbage collection, you can compile your executable with the
build tag `debug`.
*/
package bdd

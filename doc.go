/*
Package packrat implements a packrat parser-combinator core that supports
direct and indirect left recursion at multiple call sites in the same
grammar.

It follows the seed-growing technique described by Umeda & Maeda, "Packrat
Parsers Can Support Multiple Left-recursive Calls at the Same Position"
(IPSJ JIP 2021, doi:10.2197/ipsjjip.29.174), a refinement over the Warth et
al. method that fails on grammars with multiple left-recursive calls at the
same position, e.g.

	S = A '-' A
	A = B 'b' / 'b'
	B = B 'a' / A 'a'

on input "baab-baab".

Building a grammar

A grammar is a tree of *Parser[T] values built from the leaf constructors
Satisfy, Char and AnyChar, combined with the methods and functions in
combinators.go. Recursive and mutually recursive rules are expressed with
Lazy, which ties the knot by minting a stable id up front and installing
the real parser body on first use:

	expr := Lazy("expr", func(expr *Parser[Expr]) *Parser[Expr] {
		...refer to expr inside the closure to recurse...
	})

Running a parser

Parser[T].Run constructs a fresh Context over the source string and drives
the parser from position 0. It does not require the whole input to be
consumed -- chain .End() onto the top rule for that.

The hard part, and the only place where left recursion is handled, is the
driver in parser.go: memo lookup, reentrancy detection via a pending
marker, iterative seed growing at the recursion head, and a
dependency-eviction schedule that invalidates exactly the memo cells whose
answers could change as the seed grows. See parser.go for the algorithm
and context.go for the bookkeeping it depends on.
*/
package packrat

// Package adf parses and verifies ADF (alpha decomposition format)
// artifacts.
//
// An ADF file is line oriented, in the DIMACS tradition. The first
// character of each non-blank line selects its kind:
//
//	c  comment, ignored
//	p  problem declaration: "p alpha n k" with n > 0 and k > 0
//	s  set declaration: "s id e1 e2 ... em 0"
//
// Exactly one problem line must precede any set line. Set ids are 1-based
// and must appear in strictly sequential order; every set line ends with a
// literal 0 terminator; elements are nonnegative integer labels (arbitrary
// identifiers, duplicates collapse). After parsing, the number of set lines
// must equal the declared k.
//
// Verification recomputes the true union size of the power sets,
//
//	|2^S1 ∪ ... ∪ 2^Sk| = Σ (-1)^(|M|+1) · 2^|∩_{i∈M} S_i|,
//
// from the literal element sets with exact big-integer arithmetic and
// compares it to the declared n. This is the independent exactness check:
// same Möbius formula as the lattice model, but computed from ground truth
// rather than symbolic size variables.
package adf

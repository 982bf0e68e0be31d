// Package alphaset decides and verifies inclusion–exclusion decompositions
// of integers.
//
// The invariant under study is α(n): the minimum number k of finite sets
// S_1..S_k whose inclusion–exclusion signature
//
//	Σ over nonempty M ⊆ {1..k} of (-1)^(|M|+1) · 2^|∩_{i∈M} S_i|
//
// equals a target n. The module offers two complementary capabilities:
//
//   - Verification: given an explicit decomposition (literal element sets in
//     ADF, the alpha decomposition format), recompute the union size of the
//     power sets exactly and check it against the declared n. See the adf
//     package.
//   - Feasibility: given (n, k) and no candidate, decide whether any
//     intersection-size assignment satisfying the lattice constraints exists,
//     proving α(n) ≤ k by witness or α(n) > k by exhaustion. See the
//     exhaustive and sat packages.
//
// # Oracles
//
// Feasibility backends are interchangeable implementations of the Oracle
// interface: the exhaustive engine (exact, exhaustion proofs, small k) and
// the SAT-based solver (larger k, warm-start hints). Both consume the same
// constraint model from the lattice package and return the same Result
// shape, so callers select a backend by policy, not by code path.
//
// # Quick start
//
//	eng := exhaustive.New()
//	res, err := eng.Check(ctx, 3, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Feasible {
//	    fmt.Println("alpha(3) <= 2, witness:", res.Witness)
//	}
//
// Long range sweeps with resumable progress live in the sweep package;
// durable progress stores (local filesystem, S3) in checkpoint.
package alphaset

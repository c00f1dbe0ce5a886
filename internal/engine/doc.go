// Package engine drives signature discovery.
//
// For every registered owner type, in catalog order, the engine enumerates
// the owner's instance operations and then its static operations. For each
// operation it walks parameter tuples arity by arity and hands every
// candidate to the validator. Accepted signatures go to the assembler; the
// first arity level with an acceptance ends the search for that operation
// and calling mode.
//
// Discovery is single-threaded and deterministic: fixed baselines, fresh
// instances per attempt, sorted enumeration, catalog-ordered tuples. Two
// runs over an unchanged target produce the same signature list.
//
// Every rejection is local. The engine keeps only running counts
// (ir.RunSummary) besides the accepted signatures; nothing in a run is
// fatal.
package engine

// Package resolver resolves configuration keys through an ordered chain of sources.
//
// Sources are consulted in order and the first present, non-blank value wins, with
// surrounding whitespace removed. Exhausting every source is fatal: the caller gets a
// KeyUnresolved error naming the key, never an empty value.
package resolver

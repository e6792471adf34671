// Package splitter cuts a serialization tree into fragments stored
// separately and puts them back.
//
// Split walks the tree depth first. The path of a child is the path of its
// parent, a separator and the child name; the root has the base path. A
// child whose path is one of the cut paths is moved into a Fragment and
// its slot receives a placeholder element with exactly two attributes,
// referenceTo (the path) and name (the value of the child's name
// attribute). Children which are not cut are searched further.
//
// Unsplit reverses this: every element carrying referenceTo and name,
// as attributes or as children with values, is replaced in place by what
// the resolver returns for them, and the walk continues into the
// replacement so fragments may themselves hold placeholders.
//
// Fragments are addressed on disk by [FragmentFileName].
package splitter

// Package project stores a serialization tree as a split project: a base
// file holding the tree with placeholders and one file per fragment, named
// after the fragment path and its sanitized name.
//
//	game.json
//	layouts/layout-Main.json
//	layouts/layout-Game_32Over.json
//	externalEvents/externalEvents-Common.json
//
// Files are replaced atomically and left alone when their content is
// unchanged, so saving an edited project only touches the fragments that
// changed.
package project

// Package model defines the document-model contract the repair pipeline
// operates on.
//
// The transforms in the normalize package never open, parse, or persist a
// container format themselves. They mutate blocks reachable from a
// [Document], and the format packages (docx, odt) provide the concrete
// implementations bound to their XML trees. This keeps every transform a
// single implementation shared by all container formats.
//
// The interfaces are deliberately narrow: a component that only reads text
// takes a [TextContainer], a component that only reorders cells takes a
// [Row]. Blocks form a typed union: a [Block] is either a [Paragraph] or a
// [Table], distinguished with a type switch at the walk site rather than
// reflection at every node.
package model

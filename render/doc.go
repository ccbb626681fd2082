// Package render draws automata as Graphviz node-link diagrams.
//
// [NFAToDOT] and [DFAToDOT] produce DOT source; [Render] turns DOT into SVG or PNG with the
// embedded Graphviz runtime, so no external dot binary is needed.
//
// Conventions: the initial state is marked by an arrow from an invisible point, accept states
// are double circles, epsilon edges are labelled "ε", and a DFA sink state is drawn dashed.
// Parallel edges between the same pair of states are merged into one edge whose label lists
// every symbol.
package render

// Package introspect walks a cobra command tree and distills it into a plain,
// serializable model of commands and their parameters.
//
// The walk happens once at startup. Everything downstream of this package
// (forms, argv building, the TUI, the web layer) operates on CommandNode and
// ParameterInfo values only and never touches cobra types, so the rest of the
// application is independent of the CLI framework.
//
// Groups are commands that exist to hold subcommands; leaves are commands with
// a runnable handler. Leaf parameters come from two places, in declaration
// order: positional arguments parsed from the command's Use line ("<name>" is
// required, "[name]" optional), then flags enumerated from the command's flag
// set. The built-in help machinery is excluded.
package introspect

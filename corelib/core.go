/*
File    : atto/corelib/core.go
Author  : akashmaji(@iisc.ac.in)

Package corelib embeds __core__, atto's standard library module. Per
spec §4.2/§6.3 __core__ is data, not Go code: every helper it exposes
(not, abs, max, min, id, length, sum, reverse) is written in atto
itself, using only the 17 primitives and if, and is parsed exactly
like any user module, just consulted second in name resolution.
*/
package corelib

import _ "embed"

//go:embed core.atto
var Source string

// Name is the reserved module name every program's __core__ lookups
// resolve against (module.CoreModule).
const Name = "__core__"

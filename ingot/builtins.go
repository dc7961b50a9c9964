// Copyright © 2025 The Carbide authors

package ingot

// builtins is the set of function names the ingot dialect provides itself.
// References to these names never resolve to host-language declarations, and
// host declarations reusing one of these names are shadowed inside assembly
// blocks.
var builtins = map[string]bool{
	"add": true, "sub": true, "mul": true, "div": true, "mod": true,
	"exp": true, "not": true, "lt": true, "gt": true, "eq": true,
	"iszero": true, "and": true, "or": true, "xor": true, "shl": true,
	"shr": true, "byte": true, "keccak256": true,
	"pop": true, "mload": true, "mstore": true, "mstore8": true,
	"sload": true, "sstore": true, "msize": true,
	"caller": true, "callvalue": true, "calldataload": true,
	"calldatasize": true, "calldatacopy": true, "codesize": true,
	"codecopy": true, "returndatasize": true, "returndatacopy": true,
	"balance": true, "address": true, "gas": true,
	"log0": true, "log1": true, "log2": true, "log3": true, "log4": true,
	"call": true, "staticcall": true, "delegatecall": true,
	"create": true, "create2": true, "selfdestruct": true,
	"return": true, "revert": true, "stop": true, "invalid": true,
}

// IsBuiltin reports whether name is an ingot builtin function.
func IsBuiltin(name string) bool {
	return builtins[name]
}

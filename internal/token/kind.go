package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a plain identifier; system identifiers ($clog2) are SysIdent.
	Ident
	SysIdent

	KwModule       // module
	KwInterface    // interface
	KwPackage      // package
	KwInput        // input
	KwOutput       // output
	KwInout        // inout
	KwVar          // var
	KwLet          // let
	KwParam        // param
	KwLocal        // local, localparam
	KwType         // type
	KwAssign       // assign
	KwAlwaysFF     // always_ff
	KwAlwaysComb   // always_comb
	KwIf           // if
	KwIfReset      // if_reset
	KwElse         // else
	KwInst         // inst
	KwLogic        // logic
	KwBit          // bit
	KwU32          // u32
	KwU64          // u64
	KwI32          // i32
	KwI64          // i64
	KwClock        // clock
	KwClockPosedge // clock_posedge
	KwClockNegedge // clock_negedge
	KwReset        // reset
	KwResetAH      // reset_async_high
	KwResetAL      // reset_async_low
	KwResetSH      // reset_sync_high
	KwResetSL      // reset_sync_low

	// IntLit is a decimal literal without a base (42, 1_000).
	IntLit
	// BasedLit is a sized or unsized based literal (8'hff, 'b101).
	BasedLit
	// AllBitLit is a fill literal ('0, '1, 'x, 'z).
	AllBitLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	EqEq          // ==
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	AShl          // <<<
	AShr          // >>>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	Bang          // !
	AndAnd        // &&
	OrOr          // ||
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	Hash          // #
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
)

var kindNames = [...]string{
	Invalid: "invalid", EOF: "end of file", Ident: "identifier", SysIdent: "system identifier",
	KwModule: "module", KwInterface: "interface", KwPackage: "package", KwInput: "input",
	KwOutput: "output", KwInout: "inout", KwVar: "var", KwLet: "let", KwParam: "param",
	KwLocal: "local", KwType: "type", KwAssign: "assign", KwAlwaysFF: "always_ff",
	KwAlwaysComb: "always_comb", KwIf: "if", KwIfReset: "if_reset", KwElse: "else",
	KwInst: "inst", KwLogic: "logic", KwBit: "bit", KwU32: "u32", KwU64: "u64", KwI32: "i32",
	KwI64: "i64", KwClock: "clock", KwClockPosedge: "clock_posedge", KwClockNegedge: "clock_negedge",
	KwReset: "reset", KwResetAH: "reset_async_high", KwResetAL: "reset_async_low",
	KwResetSH: "reset_sync_high", KwResetSL: "reset_sync_low",
	IntLit: "number", BasedLit: "based number", AllBitLit: "fill literal",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Assign: "=",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=", PercentAssign: "%=",
	AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=", ShlAssign: "<<=", ShrAssign: ">>=",
	EqEq: "==", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", Shl: "<<", Shr: ">>",
	AShl: "<<<", AShr: ">>>", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Bang: "!",
	AndAnd: "&&", OrOr: "||", Question: "?", Colon: ":", ColonColon: "::", Semicolon: ";",
	Comma: ",", Dot: ".", Hash: "#", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

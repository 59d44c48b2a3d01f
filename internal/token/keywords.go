package token

var keywords = map[string]Kind{
	"module":           KwModule,
	"interface":        KwInterface,
	"package":          KwPackage,
	"input":            KwInput,
	"output":           KwOutput,
	"inout":            KwInout,
	"var":              KwVar,
	"let":              KwLet,
	"param":            KwParam,
	"local":            KwLocal,
	"localparam":       KwLocal,
	"type":             KwType,
	"assign":           KwAssign,
	"always_ff":        KwAlwaysFF,
	"always_comb":      KwAlwaysComb,
	"if":               KwIf,
	"if_reset":         KwIfReset,
	"else":             KwElse,
	"inst":             KwInst,
	"logic":            KwLogic,
	"bit":              KwBit,
	"u32":              KwU32,
	"u64":              KwU64,
	"i32":              KwI32,
	"i64":              KwI64,
	"clock":            KwClock,
	"clock_posedge":    KwClockPosedge,
	"clock_negedge":    KwClockNegedge,
	"reset":            KwReset,
	"reset_async_high": KwResetAH,
	"reset_async_low":  KwResetAL,
	"reset_sync_high":  KwResetSH,
	"reset_sync_low":   KwResetSL,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

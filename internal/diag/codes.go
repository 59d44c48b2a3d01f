package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynUnexpectedTopLevel Code = 2004
	SynExpectIdentifier   Code = 2005
	SynExpectType         Code = 2006
	SynExpectExpression   Code = 2007
	SynExpectColon        Code = 2008
	SynExpectStatement    Code = 2009

	// Семантические: разрешение имён
	SemaInfo                 Code = 3000
	SemaDuplicateDeclaration Code = 3001
	SemaUnresolvedIdentifier Code = 3002

	// Семантические: вычисление
	SemaInvalidNumberCharacter     Code = 3100
	SemaTooLargeNumber             Code = 3101
	SemaInvalidResetNonElaborative Code = 3102

	// Семантические: структура always_ff / if_reset
	SemaMissingClockSignal   Code = 3200
	SemaMissingIfReset       Code = 3201
	SemaMissingResetSignal   Code = 3202
	SemaCyclicTypeDependency Code = 3203

	// Семантические: типы
	SemaInvalidClock      Code = 3300
	SemaInvalidReset      Code = 3301
	SemaInvalidAssignment Code = 3302

	// IO
	IOReadFileError Code = 4001

	// Проект
	ProjInfo             Code = 5000
	ProjManifestNotFound Code = 5001
	ProjManifestInvalid  Code = 5002
	ProjNoSources        Code = 5003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                    "Unknown error",
		LexInfo:                        "Lexical information",
		LexUnknownChar:                 "Unknown character",
		LexUnterminatedBlockComment:    "Unterminated block comment",
		LexBadNumber:                   "Malformed number literal",
		SynInfo:                        "Syntax information",
		SynUnexpectedToken:             "Unexpected token",
		SynUnclosedDelimiter:           "Unclosed delimiter",
		SynExpectSemicolon:             "Expected semicolon",
		SynUnexpectedTopLevel:          "Unexpected top-level item",
		SynExpectIdentifier:            "Expected identifier",
		SynExpectType:                  "Expected type",
		SynExpectExpression:            "Expected expression",
		SynExpectColon:                 "Expected colon",
		SynExpectStatement:             "Expected statement",
		SemaInfo:                       "Semantic information",
		SemaDuplicateDeclaration:       "Duplicated identifier",
		SemaUnresolvedIdentifier:       "Undefined identifier",
		SemaInvalidNumberCharacter:     "Invalid number character",
		SemaTooLargeNumber:             "Number is too large for its width",
		SemaInvalidResetNonElaborative: "Reset value is not elaborative",
		SemaMissingClockSignal:         "Missing clock signal",
		SemaMissingIfReset:             "Missing if_reset statement",
		SemaMissingResetSignal:         "Missing reset signal",
		SemaCyclicTypeDependency:       "Cyclic type dependency",
		SemaInvalidClock:               "Invalid clock",
		SemaInvalidReset:               "Invalid reset",
		SemaInvalidAssignment:          "Invalid assignment",
		IOReadFileError:                "Cannot read file",
		ProjInfo:                       "Project information",
		ProjManifestNotFound:           "Veryl.toml not found",
		ProjManifestInvalid:            "Invalid Veryl.toml",
		ProjNoSources:                  "No source files",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Category groups analyzer findings by the stage of reasoning that produced them.
type Category uint8

const (
	CategoryOther Category = iota
	CategorySyntax
	CategoryResolution
	CategoryType
	CategoryStructural
	CategoryEvaluation
	CategoryProject
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryResolution:
		return "resolution"
	case CategoryType:
		return "type"
	case CategoryStructural:
		return "structural"
	case CategoryEvaluation:
		return "evaluation"
	case CategoryProject:
		return "project"
	}
	return "other"
}

func (c Code) Category() Category {
	switch {
	case c >= 1000 && c < 3000:
		return CategorySyntax
	case c >= 3000 && c < 3100:
		return CategoryResolution
	case c >= 3100 && c < 3200:
		return CategoryEvaluation
	case c >= 3200 && c < 3300:
		return CategoryStructural
	case c >= 3300 && c < 3400:
		return CategoryType
	case c >= 4000 && c < 6000:
		return CategoryProject
	}
	return CategoryOther
}

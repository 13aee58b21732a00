package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Parse adapter
	ParseInfo        Code = 1000
	ParseSyntaxError Code = 1001
	ParseMissingNode Code = 1002
	ParseFailed      Code = 1003

	// Component tree builder
	BuildInfo               Code = 2000
	BuildUnhandledConstruct Code = 2001
	BuildMissingPart        Code = 2002

	// Resolver
	SemaInfo               Code = 3000
	SemaDuplicateSymbol    Code = 3002
	SemaUnresolvedImport   Code = 3003
	SemaAliasCycle         Code = 3004
	SemaUnresolvedSymbol   Code = 3005
	SemaUnresolvedBase     Code = 3006
	SemaAliasDepthExceeded Code = 3007
	SemaMissingRootType    Code = 3008
	SemaAmbiguousReference Code = 3009
	SemaInheritanceCycle   Code = 3010

	// Rendering
	RenderInfo           Code = 4000
	RenderNotImplemented Code = 4001
	RenderUnsupported    Code = 4002
	RenderFailed         Code = 4003

	// Project consistency
	ProjInfo          Code = 5000
	ProjFileExcluded  Code = 5001
	ProjOrderMismatch Code = 5002
	ProjNotFinalized  Code = 5003
	ProjTimings       Code = 5004
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	ParseInfo:               "Parse information",
	ParseSyntaxError:        "Syntax error",
	ParseMissingNode:        "Missing syntax node",
	ParseFailed:             "Parser failure",
	BuildInfo:               "Build information",
	BuildUnhandledConstruct: "Unhandled construct",
	BuildMissingPart:        "Construct is missing a required part",
	SemaInfo:                "Resolution information",
	SemaDuplicateSymbol:     "Duplicate declaration",
	SemaUnresolvedImport:    "Unresolved import",
	SemaAliasCycle:          "Alias cycle",
	SemaUnresolvedSymbol:    "Unresolved reference",
	SemaUnresolvedBase:      "Unresolved base type",
	SemaAliasDepthExceeded:  "Alias chain too long",
	SemaMissingRootType:     "Universal root type not found",
	SemaAmbiguousReference:  "Ambiguous reference",
	SemaInheritanceCycle:    "Inheritance cycle",
	RenderInfo:              "Render information",
	RenderNotImplemented:    "Operation not implemented by the back end",
	RenderUnsupported:       "Construct not supported by the back end",
	RenderFailed:            "Render failure",
	ProjInfo:                "Project information",
	ProjFileExcluded:        "File excluded from the project",
	ProjOrderMismatch:       "Ordering keys do not match outputs",
	ProjNotFinalized:        "Result not finalized",
	ProjTimings:             "Phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RND%04d", ic)
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

package model

// Kind enumerates model node kinds, one per construct.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindScript
	KindNamespace
	KindUsing
	KindAttribute
	KindClass
	KindStruct
	KindInterface
	KindEnum
	KindEnumMember
	KindDelegate
	KindTypeParameter
	KindField
	KindProperty
	KindAccessor
	KindIndexer
	KindMethod
	KindConstructor
	KindDestructor
	KindOperator
	KindParameter
	KindTypeRef
	KindVariable
	KindBlock
	KindLocalDecl
	KindExprStmt
	KindReturn
	KindIf
	KindWhile
	KindDo
	KindFor
	KindForeach
	KindSwitch
	KindSwitchSection
	KindBreak
	KindContinue
	KindThrow
	KindTry
	KindCatchClause
	KindUsingStmt
	KindLock
	KindYield
	KindGoto
	KindLabeled
	KindEmpty
	KindCheckedStmt
	KindUnsafeStmt
	KindFixed
	KindLocalFunction
	KindIdentifier
	KindLiteral
	KindInterpolatedString
	KindThis
	KindBaseExpr
	KindParen
	KindMemberAccess
	KindElementAccess
	KindInvocation
	KindArgument
	KindObjectCreation
	KindArrayCreation
	KindInitializerList
	KindBinary
	KindAssignment
	KindUnary
	KindConditional
	KindCast
	KindTypeTest
	KindIsPattern
	KindPattern
	KindTypeOperator
	KindLambda
	KindAwait
	KindThrowExpr
	KindTuple
	KindSwitchExpr
	KindSwitchArm
	KindCheckedExpr
	KindDeclarationExpr
	KindTypeExpr
)

var kindNames = [...]string{
	KindInvalid:            "invalid",
	KindScript:             "script",
	KindNamespace:          "namespace",
	KindUsing:              "using",
	KindAttribute:          "attribute",
	KindClass:              "class",
	KindStruct:             "struct",
	KindInterface:          "interface",
	KindEnum:               "enum",
	KindEnumMember:         "enum member",
	KindDelegate:           "delegate",
	KindTypeParameter:      "type parameter",
	KindField:              "field",
	KindProperty:           "property",
	KindAccessor:           "accessor",
	KindIndexer:            "indexer",
	KindMethod:             "method",
	KindConstructor:        "constructor",
	KindDestructor:         "destructor",
	KindOperator:           "operator",
	KindParameter:          "parameter",
	KindTypeRef:            "type reference",
	KindVariable:           "variable",
	KindBlock:              "block",
	KindLocalDecl:          "local declaration",
	KindExprStmt:           "expression statement",
	KindReturn:             "return",
	KindIf:                 "if",
	KindWhile:              "while",
	KindDo:                 "do",
	KindFor:                "for",
	KindForeach:            "foreach",
	KindSwitch:             "switch",
	KindSwitchSection:      "switch section",
	KindBreak:              "break",
	KindContinue:           "continue",
	KindThrow:              "throw",
	KindTry:                "try",
	KindCatchClause:        "catch clause",
	KindUsingStmt:          "using statement",
	KindLock:               "lock",
	KindYield:              "yield",
	KindGoto:               "goto",
	KindLabeled:            "labeled statement",
	KindEmpty:              "empty statement",
	KindCheckedStmt:        "checked statement",
	KindUnsafeStmt:         "unsafe statement",
	KindFixed:              "fixed",
	KindLocalFunction:      "local function",
	KindIdentifier:         "identifier",
	KindLiteral:            "literal",
	KindInterpolatedString: "interpolated string",
	KindThis:               "this",
	KindBaseExpr:           "base",
	KindParen:              "parenthesized expression",
	KindMemberAccess:       "member access",
	KindElementAccess:      "element access",
	KindInvocation:         "invocation",
	KindArgument:           "argument",
	KindObjectCreation:     "object creation",
	KindArrayCreation:      "array creation",
	KindInitializerList:    "initializer list",
	KindBinary:             "binary expression",
	KindAssignment:         "assignment",
	KindUnary:              "unary expression",
	KindConditional:        "conditional expression",
	KindCast:               "cast",
	KindTypeTest:           "type test",
	KindIsPattern:          "is pattern",
	KindPattern:            "pattern",
	KindTypeOperator:       "type operator",
	KindLambda:             "lambda",
	KindAwait:              "await",
	KindThrowExpr:          "throw expression",
	KindTuple:              "tuple",
	KindSwitchExpr:         "switch expression",
	KindSwitchArm:          "switch arm",
	KindCheckedExpr:        "checked expression",
	KindDeclarationExpr:    "declaration expression",
	KindTypeExpr:           "type expression",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// KindCount is the number of valid kinds.
const KindCount = int(KindTypeExpr)

// IsTypeDecl reports whether k declares a type.
func (k Kind) IsTypeDecl() bool {
	switch k {
	case KindClass, KindStruct, KindInterface, KindEnum, KindDelegate:
		return true
	}
	return false
}

// IsDecl reports whether k is a declaration with optional pre/post hooks.
func (k Kind) IsDecl() bool {
	switch k {
	case KindNamespace, KindClass, KindStruct, KindInterface, KindEnum, KindDelegate,
		KindField, KindProperty, KindIndexer, KindMethod, KindConstructor,
		KindDestructor, KindOperator, KindEnumMember:
		return true
	}
	return false
}

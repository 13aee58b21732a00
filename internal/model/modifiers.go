package model

import "strings"

// Access is the declared accessibility. AccessDefault means no keyword was
// written.
type Access uint8

const (
	AccessDefault Access = iota
	AccessPublic
	AccessPrivate
	AccessProtected
	AccessInternal
	AccessProtectedInternal
	AccessPrivateProtected
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessProtectedInternal:
		return "protected internal"
	case AccessPrivateProtected:
		return "private protected"
	default:
		return ""
	}
}

// Flag is one general modifier.
type Flag uint32

const (
	FlagAbstract Flag = 1 << iota
	FlagStatic
	FlagVirtual
	FlagOverride
	FlagReadonly
	FlagConst
	FlagAsync
	FlagUnsafe
	FlagVolatile
	FlagRef
	FlagParams
	FlagSealed
	FlagExtern
	FlagNew
	FlagPartial
	FlagOut
	FlagIn
	FlagThis
	FlagImplicit
	FlagExplicit
	FlagEvent
	FlagRequired
	FlagScoped
)

// flagOrder is the canonical spelling order used when rendering.
var flagOrder = []struct {
	flag Flag
	word string
}{
	{FlagNew, "new"},
	{FlagStatic, "static"},
	{FlagExtern, "extern"},
	{FlagAbstract, "abstract"},
	{FlagVirtual, "virtual"},
	{FlagSealed, "sealed"},
	{FlagOverride, "override"},
	{FlagRequired, "required"},
	{FlagReadonly, "readonly"},
	{FlagVolatile, "volatile"},
	{FlagConst, "const"},
	{FlagUnsafe, "unsafe"},
	{FlagAsync, "async"},
	{FlagImplicit, "implicit"},
	{FlagExplicit, "explicit"},
	{FlagEvent, "event"},
	{FlagPartial, "partial"},
	{FlagThis, "this"},
	{FlagScoped, "scoped"},
	{FlagRef, "ref"},
	{FlagOut, "out"},
	{FlagIn, "in"},
	{FlagParams, "params"},
}

var flagByWord = func() map[string]Flag {
	m := make(map[string]Flag, len(flagOrder))
	for _, f := range flagOrder {
		m[f.word] = f.flag
	}
	return m
}()

// Modifiers is the accessibility plus general modifier set of a declaration.
type Modifiers struct {
	Access Access
	Flags  Flag
}

func (m Modifiers) Has(f Flag) bool { return m.Flags&f != 0 }

func (m Modifiers) IsStatic() bool { return m.Has(FlagStatic) || m.Has(FlagConst) }

// Add applies one modifier keyword. It reports false for unknown words.
func (m *Modifiers) Add(word string) bool {
	switch word {
	case "public":
		m.Access = AccessPublic
	case "private":
		if m.Access == AccessProtected {
			m.Access = AccessPrivateProtected
		} else {
			m.Access = AccessPrivate
		}
	case "protected":
		switch m.Access {
		case AccessInternal:
			m.Access = AccessProtectedInternal
		case AccessPrivate:
			m.Access = AccessPrivateProtected
		default:
			m.Access = AccessProtected
		}
	case "internal":
		if m.Access == AccessProtected {
			m.Access = AccessProtectedInternal
		} else {
			m.Access = AccessInternal
		}
	default:
		f, ok := flagByWord[word]
		if !ok {
			return false
		}
		m.Flags |= f
	}
	return true
}

// Words returns the modifier keywords in canonical order.
func (m Modifiers) Words() []string {
	words := make([]string, 0, 4)
	if a := m.Access.String(); a != "" {
		words = append(words, a)
	}
	for _, f := range flagOrder {
		if m.Flags&f.flag != 0 {
			words = append(words, f.word)
		}
	}
	return words
}

func (m Modifiers) String() string {
	return strings.Join(m.Words(), " ")
}

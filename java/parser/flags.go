package parser

import "strings"

// Flags holds the modifiers of a declaration together with a few bits the
// parser derives while building the tree.
type Flags uint64

const (
	FlagPublic Flags = 1 << iota
	FlagPrivate
	FlagProtected
	FlagStatic
	FlagFinal
	FlagSynchronized
	FlagVolatile
	FlagTransient
	FlagNative
	FlagInterface
	FlagAbstract
	FlagStrictfp
	FlagAnnotation
	FlagEnum
	FlagDefault
	FlagSealed
	FlagNonSealed
	// FlagDeprecated is set when the declaration's doc comment has a
	// @deprecated tag.
	FlagDeprecated
	FlagVarargs
	FlagRecord
	FlagCompactConstructor
	FlagGenerated
	FlagParameter
	// FlagImplicitType marks a lambda parameter or local variable whose
	// type was omitted or written as var.
	FlagImplicitType
	FlagOpen
	FlagTransitive
)

// ModifierFlags are the flags that can be written in source.
const ModifierFlags = FlagPublic | FlagPrivate | FlagProtected | FlagStatic |
	FlagFinal | FlagSynchronized | FlagVolatile | FlagTransient | FlagNative |
	FlagAbstract | FlagStrictfp | FlagDefault | FlagSealed | FlagNonSealed

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagPublic, "public"},
	{FlagPrivate, "private"},
	{FlagProtected, "protected"},
	{FlagStatic, "static"},
	{FlagFinal, "final"},
	{FlagSynchronized, "synchronized"},
	{FlagVolatile, "volatile"},
	{FlagTransient, "transient"},
	{FlagNative, "native"},
	{FlagInterface, "interface"},
	{FlagAbstract, "abstract"},
	{FlagStrictfp, "strictfp"},
	{FlagAnnotation, "annotation"},
	{FlagEnum, "enum"},
	{FlagDefault, "default"},
	{FlagSealed, "sealed"},
	{FlagNonSealed, "non-sealed"},
	{FlagDeprecated, "deprecated"},
	{FlagVarargs, "varargs"},
	{FlagRecord, "record"},
	{FlagCompactConstructor, "compact"},
	{FlagGenerated, "generated"},
	{FlagParameter, "parameter"},
	{FlagImplicitType, "implicit"},
	{FlagOpen, "open"},
	{FlagTransitive, "transitive"},
}

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Lowest returns the name of the lowest flag set in f.
func (f Flags) Lowest() string {
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			return fn.name
		}
	}
	return ""
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, " ")
}

var modifierTokens = map[TokenKind]Flags{
	TokenPrivate:      FlagPrivate,
	TokenProtected:    FlagProtected,
	TokenPublic:       FlagPublic,
	TokenStatic:       FlagStatic,
	TokenTransient:    FlagTransient,
	TokenFinal:        FlagFinal,
	TokenAbstract:     FlagAbstract,
	TokenNative:       FlagNative,
	TokenVolatile:     FlagVolatile,
	TokenSynchronized: FlagSynchronized,
	TokenStrictfp:     FlagStrictfp,
	TokenDefault:      FlagDefault,
}

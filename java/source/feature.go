package source

// Feature is a language construct whose availability depends on the level.
type Feature int

const (
	Diamond Feature = iota
	Multicatch
	TryWithResources
	BinaryLiterals
	UnderscoresInLiterals
	Lambda
	MethodReferences
	DefaultMethods
	StaticInterfaceMethods
	TypeAnnotations
	AnnotationsAfterTypeParams
	IntersectionTypesInCast
	UnderscoreIdentifier
	EffectivelyFinalInTryWithResources
	PrivateInterfaceMethods
	DiamondWithAnonymousClasses
	Modules
	LocalVariableTypeInference
	VarSyntaxImplicitLambdas
	SwitchMultipleCaseLabels
	SwitchRule
	SwitchExpression
	TextBlocks
	PatternMatchingInInstanceof
	ReifiableTypesInstanceof
	Records
	SealedClasses
	PatternSwitch
)

type featureInfo struct {
	name    string
	min     Level
	max     Level
	preview bool
}

var features = [...]featureInfo{
	Diamond:                            {name: "diamond operator", min: JDK7},
	Multicatch:                         {name: "multi-catch statements", min: JDK7},
	TryWithResources:                   {name: "try-with-resources", min: JDK7},
	BinaryLiterals:                     {name: "binary literals", min: JDK7},
	UnderscoresInLiterals:              {name: "underscores in literals", min: JDK7},
	Lambda:                             {name: "lambda expressions", min: JDK8},
	MethodReferences:                   {name: "method references", min: JDK8},
	DefaultMethods:                     {name: "default methods", min: JDK8},
	StaticInterfaceMethods:             {name: "static interface methods", min: JDK8},
	TypeAnnotations:                    {name: "type annotations", min: JDK8},
	AnnotationsAfterTypeParams:         {name: "annotations after method type parameters", min: JDK8},
	IntersectionTypesInCast:            {name: "intersection types", min: JDK8},
	UnderscoreIdentifier:               {name: "'_' as an identifier", min: MinLevel, max: JDK8},
	EffectivelyFinalInTryWithResources: {name: "variables in try-with-resources", min: JDK9},
	PrivateInterfaceMethods:            {name: "private interface methods", min: JDK9},
	DiamondWithAnonymousClasses:        {name: "diamond operator with anonymous classes", min: JDK9},
	Modules:                            {name: "modules", min: JDK9},
	LocalVariableTypeInference:         {name: "local variable type inference", min: JDK10},
	VarSyntaxImplicitLambdas:           {name: "var syntax in implicit lambdas", min: JDK11},
	SwitchMultipleCaseLabels:           {name: "multiple case labels", min: JDK14},
	SwitchRule:                         {name: "switch rules", min: JDK14},
	SwitchExpression:                   {name: "switch expressions", min: JDK14},
	TextBlocks:                         {name: "text blocks", min: JDK15},
	PatternMatchingInInstanceof:        {name: "pattern matching in instanceof", min: JDK16},
	ReifiableTypesInstanceof:           {name: "reifiable types in instanceof", min: JDK16},
	Records:                            {name: "records", min: JDK16},
	SealedClasses:                      {name: "sealed classes", min: JDK17},
	PatternSwitch:                      {name: "patterns in switch statements", min: JDK17, preview: true},
}

func (f Feature) String() string {
	return features[f].name
}

// MinLevel returns the first level that allows f.
func (f Feature) MinLevel() Level {
	return features[f].min
}

// AllowedInSource reports whether f may be used at level l.
func (f Feature) AllowedInSource(l Level) bool {
	info := features[f]
	if l < info.min {
		return false
	}
	return info.max == 0 || l <= info.max
}

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/google/go-cmp/cmp"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		sig       string
		module    string
		qualifier string
		member    string
		params    []NodeKind
		hasParams bool
	}{
		{sig: "String", qualifier: "String"},
		{sig: "java.util.List", qualifier: "java.util.List"},
		{sig: "#field", member: "field"},
		{sig: "m()", member: "m", hasParams: true},
		{sig: "#m()", member: "m", hasParams: true},
		{sig: "java.base/", module: "java.base"},
		{sig: "java.base/java.lang.String", module: "java.base", qualifier: "java.lang.String"},
		{
			sig:       "java.util.List#add(int, Object)",
			qualifier: "java.util.List",
			member:    "add",
			params:    []NodeKind{KindPrimitiveType, KindIdentifier},
			hasParams: true,
		},
		{
			sig:       "Arrays#asList(String... args)",
			qualifier: "Arrays",
			member:    "asList",
			params:    []NodeKind{KindArrayType},
			hasParams: true,
		},
		{
			sig:       "Map#put(K key, V value)",
			qualifier: "Map",
			member:    "put",
			params:    []NodeKind{KindIdentifier, KindIdentifier},
			hasParams: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			ref, err := ParseReference(tt.sig)
			if err != nil {
				t.Fatalf("ParseReference(%q) error = %v", tt.sig, err)
			}
			if got := QualifiedName(ref.Module); got != tt.module {
				t.Errorf("Module = %q, want %q", got, tt.module)
			}
			if got := QualifiedName(ref.Qualifier); got != tt.qualifier {
				t.Errorf("Qualifier = %q, want %q", got, tt.qualifier)
			}
			var member string
			if ref.Member != nil {
				member = ref.Member.Name
			}
			if member != tt.member {
				t.Errorf("Member = %q, want %q", member, tt.member)
			}
			if got := ref.Params != nil; got != tt.hasParams {
				t.Errorf("Params != nil = %v, want %v", got, tt.hasParams)
			}
			var got []NodeKind
			for _, p := range ref.Params {
				got = append(got, p.Kind)
			}
			if diff := cmp.Diff(tt.params, got); diff != "" {
				t.Errorf("param kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseReferencePositions(t *testing.T) {
	ref, err := ParseReference("java.util.List#add(int, Object)")
	if err != nil {
		t.Fatalf("ParseReference error = %v", err)
	}
	if got, want := ref.Member.Pos, 15; got != want {
		t.Errorf("Member.Pos = %d, want %d", got, want)
	}
	if got, want := ref.Params[0].Pos, 19; got != want {
		t.Errorf("Params[0].Pos = %d, want %d", got, want)
	}
	if got, want := ref.Params[1].Pos, 24; got != want {
		t.Errorf("Params[1].Pos = %d, want %d", got, want)
	}
}

func TestParseReferenceErrors(t *testing.T) {
	tests := []struct {
		sig string
		key diag.Key
		pos int
	}{
		{"#m(@A int)", diag.DocRefAnnotationsInParam, 3},
		{"List#add(int", diag.DocRefBadParens, 8},
		{"List#m(int) x", diag.DocRefBadParens, 10},
		{"List#a b", diag.DocRefUnexpectedInput, 7},
		{"List#add(int,)", diag.DocRefSyntaxError, 13},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			_, err := ParseReference(tt.sig)
			var rerr *ReferenceError
			if !errors.As(err, &rerr) {
				t.Fatalf("ParseReference(%q) error = %v, want *ReferenceError", tt.sig, err)
			}
			if rerr.Key != tt.key {
				t.Errorf("Key = %s, want %s", rerr.Key, tt.key)
			}
			if rerr.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", rerr.Pos, tt.pos)
			}
			if !strings.Contains(err.Error(), "bad reference syntax") {
				t.Errorf("Error() = %q, want it to mention bad reference syntax", err.Error())
			}
		})
	}
}

func TestParseReferenceDoesNotReport(t *testing.T) {
	log := diag.NewLog("Test.java")
	if _, err := ParseReference("List#add(int,)", WithHandler(log)); err == nil {
		t.Fatal("ParseReference error = nil, want an error")
	}
	if got := log.Diagnostics(); len(got) != 0 {
		t.Errorf("handler received %v, want nothing", got)
	}
}

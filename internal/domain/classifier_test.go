package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "recase.dev/pkg/recase/internal/model"
)

func TestClassify_Eligible(t *testing.T) {
	classifier := NewClassifier(nil)

	content := []byte(`class User {
    int user_id = 5; // primary key
    String first_name = "x";
}
`)

	assert.Equal(t, m.ClassEligible, classifier.Classify("src/User.java", content))
}

func TestClassify_GeneratedMarkers(t *testing.T) {
	classifier := NewClassifier(nil)

	tests := []struct {
		name    string
		content string
	}{
		{"banner", "// Code generated by protoc. DO NOT EDIT.\nclass A {}\n"},
		{"at generated", "/* @generated */\nclass A {}\n"},
		{"auto-generated", "// This file is auto-generated, changes will be lost\nclass A {}\n"},
		{"case insensitive", "// GENERATED BY wire\nclass A {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, m.ClassGenerated, classifier.Classify("src/A.java", []byte(tt.content)))
		})
	}
}

func TestClassify_GeneratedMarkerOnlyInHeader(t *testing.T) {
	classifier := NewClassifier(nil)

	// The marker sits far below the inspected header lines.
	content := "class A {\n\n\n\n\n\n\n\n\n\n\n// generated by hand, honestly\n}\n"

	assert.Equal(t, m.ClassEligible, classifier.Classify("src/A.java", []byte(content)))
}

func TestClassify_GeneratedFilenames(t *testing.T) {
	classifier := NewClassifier(nil)
	content := []byte("class A {}\n")

	for _, path := range []m.Path{
		"src/GeneratedUser.java",
		"src/user.generated.java",
		"src/user_generated.java",
	} {
		assert.Equal(t, m.ClassGenerated, classifier.Classify(path, content), "path %s", path)
	}
}

func TestClassify_SyntaxUnsafe(t *testing.T) {
	classifier := NewClassifier(nil)

	tests := []struct {
		name    string
		content string
	}{
		{"unclosed brace", "class A {\n"},
		{"stray closing brace", "class A {}\n}\n"},
		{"unclosed paren", "void f(int a {\n}\n"},
		{"open block comment", "class A {}\n/* trailing\n"},
		{"open string literal", "class A { String s = \"oops; }\n"},
		{"open char literal", "class A { char c = 'x; }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, m.ClassSyntaxUnsafe, classifier.Classify("src/A.java", []byte(tt.content)))
		})
	}
}

func TestBraceBalanceChecker_IgnoresBracesInLiteralsAndComments(t *testing.T) {
	checker := BraceBalanceChecker{}

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"brace in string", `class A { String s = "{{{"; }`, true},
		{"brace in char", `class A { char c = '{'; }`, true},
		{"brace in line comment", "class A { // {{{\n}", true},
		{"brace in block comment", "class A { /* }}} */ }", true},
		{"escaped quote in string", `class A { String s = "\"{"; }`, true},
		{"trailing line comment without newline", "class A {}\n// done", true},
		{"balanced empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.Check([]byte(tt.content)))
		})
	}
}

type alwaysUnsafeChecker struct{}

func (alwaysUnsafeChecker) Check([]byte) bool { return false }

func TestClassifier_PluggableSyntaxChecker(t *testing.T) {
	classifier := NewClassifier(alwaysUnsafeChecker{})

	assert.Equal(t, m.ClassSyntaxUnsafe, classifier.Classify("src/A.java", []byte("class A {}\n")))
}

// Package testing provides test utilities for querydsl.
package testing

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/guenzelsen/querydsl"
	"github.com/zoobzio/dbml"
)

// TestSchema creates a blog schema for testing.
// Includes posts, comments (nested and child documents) and authors.
func TestSchema(t *testing.T) *querydsl.Schema {
	t.Helper()

	project := dbml.NewProject("blog")

	// Posts
	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("title", "text"))
	posts.AddColumn(dbml.NewColumn("content", "text"))
	posts.AddColumn(dbml.NewColumn("status", "keyword"))
	posts.AddColumn(dbml.NewColumn("tags", "keyword"))
	posts.AddColumn(dbml.NewColumn("views", "integer"))
	posts.AddColumn(dbml.NewColumn("draft", "boolean"))
	project.AddTable(posts)

	// Comments, both nested under posts and indexed as children
	comments := dbml.NewTable("comments")
	comments.AddColumn(dbml.NewColumn("text", "text"))
	comments.AddColumn(dbml.NewColumn("author", "keyword"))
	comments.AddColumn(dbml.NewColumn("stars", "integer"))
	project.AddTable(comments)

	// Authors
	authors := dbml.NewTable("authors")
	authors.AddColumn(dbml.NewColumn("name", "text"))
	authors.AddColumn(dbml.NewColumn("email", "keyword"))
	project.AddTable(authors)

	schema, err := querydsl.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// AssertJSON compares two JSON documents structurally, ignoring key order
// and whitespace.
func AssertJSON(t *testing.T, expected, actual string) {
	t.Helper()
	var want, got any
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatalf("Expected value is not valid JSON: %v\n%s", err, expected)
	}
	if err := json.Unmarshal([]byte(actual), &got); err != nil {
		t.Fatalf("Actual value is not valid JSON: %v\n%s", err, actual)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("JSON mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertRendered renders q with r and compares the output to expected.
func AssertRendered(t *testing.T, r querydsl.Renderer, q *querydsl.Query, expected string) {
	t.Helper()
	result, err := querydsl.Render(q, r)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	AssertJSON(t, expected, result.JSON)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}

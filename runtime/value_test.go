// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "testing"

func TestNewNumberRejectsMalformedLiteral(t *testing.T) {
	if _, err := NewNumber("not-a-number"); err == nil {
		t.Fatalf("expected an error for a malformed numeric literal")
	}
}

func TestNumberAsStringRoundTripsExactDecimal(t *testing.T) {
	n, err := NewNumber("12.34")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := n.AsString(); got != "12.34" {
		t.Fatalf("got %q, want an exact, non-scientific round trip", got)
	}
}

func TestIsDoneOnlyMatchesTheSingleton(t *testing.T) {
	if !IsDone(Done) {
		t.Fatalf("expected Done to be Done")
	}

	if IsDone(String("done")) {
		t.Fatalf("expected a String to never be mistaken for Done")
	}
}

func TestUnboundNameRoundTrip(t *testing.T) {
	v := NewUnbound("count")

	name, ok := UnboundName(v)
	if !ok || name != "count" {
		t.Fatalf("got (%q, %v), want (\"count\", true)", name, ok)
	}

	if _, ok := UnboundName(String("count")); ok {
		t.Fatalf("expected a plain String to never report as unbound")
	}
}

func TestIsUnknownOnlyMatchesTheSingleton(t *testing.T) {
	if !IsUnknown(Unknown) {
		t.Fatalf("expected Unknown to be Unknown")
	}

	if IsUnknown(Boolean(true)) {
		t.Fatalf("expected a Boolean to never be mistaken for Unknown")
	}
}

func TestDescribeKindNamesEveryVariant(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Boolean(true), "a boolean"},
		{String("x"), "a string"},
		{Done, "done"},
		{Unknown, "the Unknown pattern"},
		{NewObject(), "an object"},
		{NewType(nil), "a type"},
		{NewTypeProxy(), "a type"},
	}

	for _, c := range cases {
		if got := DescribeKind(c.v); got != c.want {
			t.Fatalf("DescribeKind(%T) = %q, want %q", c.v, got, c.want)
		}
	}
}

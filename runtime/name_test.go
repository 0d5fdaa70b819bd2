// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "testing"

func TestUglifyPrettyRoundTrip(t *testing.T) {
	cases := [][]string{
		{"size"},
		{"while", "do"},
		{"at", "put"},
	}

	for _, parts := range cases {
		uglified := Uglify(parts)

		got := Pretty(uglified)

		want := ""
		for _, p := range parts {
			want += p + "()"
		}

		if len(parts) == 1 {
			want = parts[0]
		}

		if got != want {
			t.Fatalf("Pretty(Uglify(%v)) = %q, want %q", parts, got, want)
		}
	}
}

func TestPrettyLeavesOperatorNamesAlone(t *testing.T) {
	if got := Pretty("+"); got != "+" {
		t.Fatalf("got %q, want %q", got, "+")
	}
}

func TestPrettyEmptyString(t *testing.T) {
	if got := Pretty(""); got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
}

package util

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"../../etc/passwd", "etc_passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"my photo.png", "my_photo.png"},
		{"a/b/c.png", "a_b_c.png"},
		{"résumé.pdf", "rsum.pdf"},
		{"....", ""},
		{"", ""},
		{"scan_result.png", "scan_result.png"},
		{"  spaced  name .txt", "spaced_name_.txt"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsSafeStoredFilename(t *testing.T) {
	safe := []string{"etc_passwd", "scan_result.png", "a-b_c.1.jpg"}
	for _, name := range safe {
		if !IsSafeStoredFilename(name) {
			t.Errorf("expected %q to be safe", name)
		}
	}

	unsafe := []string{"", "..", "../etc", "a/b.png", `a\b.png`, ".hidden", "name "}
	for _, name := range unsafe {
		if IsSafeStoredFilename(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

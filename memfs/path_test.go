package memfs

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"", nil},
		{"a/b/c", []string{"a", "b", "c"}},
		{"/a//b/./c/", []string{"a", "b", "c"}},
		{"a/../b", []string{"b"}},
		{"../../../etc/passwd", []string{"etc", "passwd"}},
		{"a/b/../../c", []string{"c"}},
	}
	for _, c := range cases {
		got := normalize(c.path)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("normalize(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestNormalizeNeverEscapesRoot(t *testing.T) {
	segs := normalize("../../../../../etc/shadow")
	if len(segs) != 2 || segs[0] != "etc" || segs[1] != "shadow" {
		t.Fatalf("normalize escaped root: %v", segs)
	}
}

func TestJoinGuestPath(t *testing.T) {
	cases := []struct {
		base, child, want string
	}{
		{"/", "foo", "/foo"},
		{"/foo", "bar", "/foo/bar"},
		{"/foo", "/bar", "/bar"},
		{"/foo", "../bar", "/bar"},
	}
	for _, c := range cases {
		if got := joinGuestPath(c.base, c.child); got != c.want {
			t.Errorf("joinGuestPath(%q, %q) = %q, want %q", c.base, c.child, got, c.want)
		}
	}
}

package autotools

import "testing"

func TestEnableDisable(t *testing.T) {
	if got := EnableDisable("doc", true); got != "--enable-doc" {
		t.Errorf("EnableDisable = %q", got)
	}
	if got := EnableDisable("doc", false); got != "--disable-doc" {
		t.Errorf("EnableDisable = %q", got)
	}
}

func TestWithWithout(t *testing.T) {
	if got := WithWithout("zlib", "/opt/zlib"); got != "--with-zlib=/opt/zlib" {
		t.Errorf("WithWithout = %q", got)
	}
	if got := WithWithout("zlib", ""); got != "--without-zlib" {
		t.Errorf("WithWithout = %q", got)
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix("/opt/nco"); got != "--prefix=/opt/nco" {
		t.Errorf("Prefix = %q", got)
	}
}

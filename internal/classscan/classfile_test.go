// SPDX-License-Identifier: MPL-2.0

package classscan

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

// classBytes synthesizes a minimal class file for name extending super.
// An empty super produces a class with super_class zero, like
// java.lang.Object.
func classBytes(t *testing.T, name, super string) []byte {
	t.Helper()

	var b bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&b, binary.BigEndian, v); err != nil {
			t.Fatalf("write class bytes: %v", err)
		}
	}
	utf8 := func(s string) {
		w(uint8(tagUtf8))
		w(uint16(len(s)))
		b.WriteString(s)
	}

	w(uint32(classMagic))
	w(uint16(0))  // minor version
	w(uint16(52)) // major version, Java 8

	// Pool: 1=Utf8 name, 2=Class->1 and, with a super, 3=Utf8 super,
	// 4=Class->3.
	count := uint16(3)
	if super != "" {
		count = 5
	}
	w(count)
	utf8(strings.ReplaceAll(name, ".", "/"))
	w(uint8(tagClass))
	w(uint16(1))
	superIdx := uint16(0)
	if super != "" {
		utf8(strings.ReplaceAll(super, ".", "/"))
		w(uint8(tagClass))
		w(uint16(3))
		superIdx = 4
	}

	w(uint16(0x0021)) // access_flags: public super
	w(uint16(2))      // this_class
	w(superIdx)       // super_class
	w(uint16(0))      // interfaces_count
	w(uint16(0))      // fields_count
	w(uint16(0))      // methods_count
	w(uint16(0))      // attributes_count
	return b.Bytes()
}

func TestParseClassHeader(t *testing.T) {
	t.Parallel()

	data := classBytes(t, "com.example.FooContainer", "net.minecraft.screen.ScreenHandler")
	hdr, err := parseClassHeader(data)
	if err != nil {
		t.Fatalf("parseClassHeader() error = %v", err)
	}
	if hdr.name != "com.example.FooContainer" {
		t.Errorf("name = %q", hdr.name)
	}
	if hdr.super != "net.minecraft.screen.ScreenHandler" {
		t.Errorf("super = %q", hdr.super)
	}
}

func TestParseClassHeader_NoSuper(t *testing.T) {
	t.Parallel()

	hdr, err := parseClassHeader(classBytes(t, "java.lang.Object", ""))
	if err != nil {
		t.Fatalf("parseClassHeader() error = %v", err)
	}
	if hdr.name != "java.lang.Object" {
		t.Errorf("name = %q", hdr.name)
	}
	if hdr.super != "" {
		t.Errorf("super = %q, want empty", hdr.super)
	}
}

// The parser must honor the double-width pool slots of long and double
// constants; miscounting them shifts every later pool index.
func TestParseClassHeader_WideConstants(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&b, binary.BigEndian, v); err != nil {
			t.Fatalf("write class bytes: %v", err)
		}
	}

	w(uint32(classMagic))
	w(uint16(0))
	w(uint16(52))

	// Pool: 1..2=Long (two slots), 3=MethodHandle, 4=Utf8 "a/B", 5=Class->4,
	// 6=Utf8 "a/C", 7=Class->6.
	w(uint16(8))
	w(uint8(tagLong))
	w(uint64(42))
	w(uint8(tagMethodHandle))
	w(uint8(1))
	w(uint16(5))
	w(uint8(tagUtf8))
	w(uint16(3))
	b.WriteString("a/B")
	w(uint8(tagClass))
	w(uint16(4))
	w(uint8(tagUtf8))
	w(uint16(3))
	b.WriteString("a/C")
	w(uint8(tagClass))
	w(uint16(6))

	w(uint16(0x0021))
	w(uint16(5)) // this_class -> a/B
	w(uint16(7)) // super_class -> a/C
	w(uint16(0))
	w(uint16(0))
	w(uint16(0))
	w(uint16(0))

	hdr, err := parseClassHeader(b.Bytes())
	if err != nil {
		t.Fatalf("parseClassHeader() error = %v", err)
	}
	if hdr.name != "a.B" || hdr.super != "a.C" {
		t.Errorf("parsed %q extends %q, want a.B extends a.C", hdr.name, hdr.super)
	}
}

func TestParseClassHeader_Malformed(t *testing.T) {
	t.Parallel()

	valid := classBytes(t, "a.B", "a.C")

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 52}},
		{"truncated pool", valid[:12]},
		{"truncated mid entry", valid[:len(valid)-10]},
		{"not a class at all", []byte("{\"id\": \"whoops\"}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := parseClassHeader(tt.data); !errors.Is(err, errMalformedClass) {
				t.Errorf("parseClassHeader() error = %v, want errMalformedClass", err)
			}
		})
	}
}

func TestSimpleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fqcn string
		want string
	}{
		{"com.example.FooContainer", "FooContainer"},
		{"FooContainer", "FooContainer"},
		{"com.example.Outer$InnerContainer", "InnerContainer"},
	}
	for _, tt := range tests {
		if got := simpleName(tt.fqcn); got != tt.want {
			t.Errorf("simpleName(%q) = %q, want %q", tt.fqcn, got, tt.want)
		}
	}
}

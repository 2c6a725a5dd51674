// SPDX-License-Identifier: MPL-2.0

package classscan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// classMagic opens every JVM class file.
const classMagic = 0xCAFEBABE

// Constant pool tags, JVMS table 4.4-A. Only Utf8 and Class entries are
// decoded; the rest are skipped by their fixed sizes.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// errMalformedClass marks payloads that are not decodable class files.
var errMalformedClass = errors.New("malformed class file")

// classHeader is the slice of a class file needed for hierarchy analysis.
// Both names are dotted; super is empty when the class has no superclass
// (java.lang.Object and module descriptors).
type classHeader struct {
	name  string
	super string
}

// byteReader walks a class file buffer big-endian with a sticky error, so
// parse code can read linearly and check once per section.
type byteReader struct {
	buf []byte
	off int
	err error
}

func (r *byteReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = fmt.Errorf("%w: truncated at offset %d", errMalformedClass, r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *byteReader) skip(n int) { r.take(n) }

func (r *byteReader) u1() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *byteReader) u2() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *byteReader) u4() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *byteReader) str(n int) string { return string(r.take(n)) }

// parseClassHeader decodes the constant pool and the this/super class
// references of a single class file. Everything past the super_class field
// (interfaces, fields, methods, attributes) is irrelevant here and ignored.
func parseClassHeader(data []byte) (classHeader, error) {
	r := byteReader{buf: data}

	if r.u4() != classMagic {
		if r.err != nil {
			return classHeader{}, r.err
		}
		return classHeader{}, fmt.Errorf("%w: bad magic", errMalformedClass)
	}
	r.skip(4) // minor and major version

	// Pool indices are 1-based and the count is one past the last index.
	cpCount := r.u2()
	utf8s := map[uint16]string{}
	classRefs := map[uint16]uint16{}
	for i := uint16(1); i < cpCount && r.err == nil; i++ {
		switch tag := r.u1(); tag {
		case tagUtf8:
			utf8s[i] = r.str(int(r.u2()))
		case tagClass:
			classRefs[i] = r.u2()
		case tagLong, tagDouble:
			// Eight-byte constants occupy two pool slots.
			r.skip(8)
			i++
		case tagInteger, tagFloat, tagFieldref, tagMethodref,
			tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			r.skip(4)
		case tagMethodHandle:
			r.skip(3)
		case tagString, tagMethodType, tagModule, tagPackage:
			r.skip(2)
		default:
			return classHeader{}, fmt.Errorf("%w: unknown constant pool tag %d", errMalformedClass, tag)
		}
	}

	r.skip(2) // access_flags
	thisClass := r.u2()
	superClass := r.u2()
	if r.err != nil {
		return classHeader{}, r.err
	}

	name, ok := className(utf8s, classRefs, thisClass)
	if !ok {
		return classHeader{}, fmt.Errorf("%w: unresolvable this_class %d", errMalformedClass, thisClass)
	}
	hdr := classHeader{name: name}
	if superClass != 0 {
		super, ok := className(utf8s, classRefs, superClass)
		if !ok {
			return classHeader{}, fmt.Errorf("%w: unresolvable super_class %d", errMalformedClass, superClass)
		}
		hdr.super = super
	}
	return hdr, nil
}

// className follows a Class pool entry to its Utf8 name and converts the
// internal slash form to the dotted form.
func className(utf8s map[uint16]string, classRefs map[uint16]uint16, idx uint16) (string, bool) {
	nameIdx, ok := classRefs[idx]
	if !ok {
		return "", false
	}
	name, ok := utf8s[nameIdx]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(name, "/", "."), true
}

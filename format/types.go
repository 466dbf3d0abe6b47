// Package format defines the closed set of physical column types JONX can
// store and the fixed container version it understands.
package format

// PhysicalType identifies the on-disk representation chosen for a column.
//
// The set is closed: schema inference (see package typeinfer) only ever
// produces one of these seven tags, and the column codec (see package
// coldata) only ever encodes/decodes one of these seven layouts.
type PhysicalType uint8

const (
	TypeInt16   PhysicalType = 0x1 // 2 bytes, little-endian signed integer
	TypeInt32   PhysicalType = 0x2 // 4 bytes, little-endian signed integer
	TypeFloat16 PhysicalType = 0x3 // 2 bytes, IEEE 754 binary16
	TypeFloat32 PhysicalType = 0x4 // 4 bytes, IEEE 754 binary32
	TypeBool    PhysicalType = 0x5 // 1 byte, 0x00 / 0x01
	TypeStr     PhysicalType = 0x6 // variable, JSON array of UTF-8 strings
	TypeJSON    PhysicalType = 0x7 // variable, JSON array of arbitrary values
)

// String returns the wire-level type tag, matching the literal strings used
// in the schema frame's "types" map.
func (t PhysicalType) String() string {
	switch t {
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeFloat16:
		return "float16"
	case TypeFloat32:
		return "float32"
	case TypeBool:
		return "bool"
	case TypeStr:
		return "str"
	case TypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the type participates in argsort indexing and
// numeric aggregate operations (find_min/find_max, sum/avg).
func (t PhysicalType) IsNumeric() bool {
	switch t {
	case TypeInt16, TypeInt32, TypeFloat16, TypeFloat32:
		return true
	default:
		return false
	}
}

// Width returns the fixed encoded width in bytes for fixed-width types, and
// 0 for variable-width types (str, json).
func (t PhysicalType) Width() int {
	switch t {
	case TypeInt16, TypeFloat16:
		return 2
	case TypeInt32, TypeFloat32:
		return 4
	case TypeBool:
		return 1
	default:
		return 0
	}
}

// ParsePhysicalType maps a schema type_tag string back to its PhysicalType.
// The second return value is false if tag is not one of the seven
// recognized tags.
func ParsePhysicalType(tag string) (PhysicalType, bool) {
	switch tag {
	case "int16":
		return TypeInt16, true
	case "int32":
		return TypeInt32, true
	case "float16":
		return TypeFloat16, true
	case "float32":
		return TypeFloat32, true
	case "bool":
		return TypeBool, true
	case "str":
		return TypeStr, true
	case "json":
		return TypeJSON, true
	default:
		return 0, false
	}
}

// Version is the current container format version written to the
// header's byte offset 4. Readers reject any other value with
// errs.ErrUnsupportedVersion.
const Version uint32 = 1

// Magic is the 4-byte file signature at offset 0 of every JONX file.
var Magic = [4]byte{'J', 'O', 'N', 'X'}

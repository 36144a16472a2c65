// Package endian provides byte order utilities for decoding packed binary bodies.
//
// Binary mesh and field files store their payload as raw machine words in the byte
// order of the machine that wrote them. The header "arch" entry records that order
// as "LSB" or "MSB"; files without it are read in the host's native order.
//
// # Basic Usage
//
//	engine := endian.GetNativeEngine()
//	v := math.Float64frombits(engine.Uint64(word))
//
// For files that declare their order:
//
//	engine, ok := endian.EngineForArch("MSB")
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"strings"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// EngineForArch maps the byte order token of a header "arch" entry to an engine.
//
// "LSB" selects little-endian and "MSB" big-endian, case-insensitively. Any other
// token returns the native engine and false.
func EngineForArch(token string) (EndianEngine, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "LSB":
		return binary.LittleEndian, true
	case "MSB":
		return binary.BigEndian, true
	default:
		return GetNativeEngine(), false
	}
}

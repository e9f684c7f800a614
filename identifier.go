package castfile

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Identifier indicates the kind of a node. It is the little-endian packing of
// a four-character ASCII mnemonic.
type Identifier uint32

// MakeIdentifier packs a mnemonic of up to four bytes into an Identifier.
// Shorter mnemonics are padded with NUL bytes.
func MakeIdentifier(mnemonic string) Identifier {
	var b [4]byte
	copy(b[:], mnemonic)
	return Identifier(binary.LittleEndian.Uint32(b[:]))
}

// Bytes returns the four bytes of the identifier in wire order.
func (id Identifier) Bytes() (b [4]byte) {
	binary.LittleEndian.PutUint32(b[:], uint32(id))
	return b
}

// String returns the mnemonic of the identifier. Identifiers that are not
// printable are formatted as hexadecimal.
func (id Identifier) String() string {
	b := id.Bytes()
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	if n == 0 {
		return fmt.Sprintf("0x%08X", uint32(id))
	}
	for _, c := range b[:n] {
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return fmt.Sprintf("0x%08X", uint32(id))
		}
	}
	return string(b[:n])
}

// ParseIdentifier parses the result of Identifier.String. Strings longer than
// four bytes must be hexadecimal with a "0x" prefix.
func ParseIdentifier(s string) (Identifier, error) {
	if len(s) <= 4 {
		return MakeIdentifier(s), nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, fmt.Errorf("invalid identifier %q", s)
	}
	u, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return Identifier(u), nil
}

// Known node kinds.
const (
	IDRoot              Identifier = 0x746F6F72 // root
	IDMetadata          Identifier = 0x6174656D // meta
	IDModel             Identifier = 0x6C646F6D // modl
	IDMesh              Identifier = 0x6873656D // mesh
	IDBlendShape        Identifier = 0x68736C62 // blsh
	IDSkeleton          Identifier = 0x6C656B73 // skel
	IDBone              Identifier = 0x656E6F62 // bone
	IDIKHandle          Identifier = 0x64686B69 // ikhd
	IDConstraint        Identifier = 0x74736E63 // cnst
	IDMaterial          Identifier = 0x6C74616D // matl
	IDFile              Identifier = 0x656C6966 // file
	IDAnimation         Identifier = 0x6D696E61 // anim
	IDCurve             Identifier = 0x76727563 // curv
	IDCurveModeOverride Identifier = 0x726F6D63 // cmor
	IDNotificationTrack Identifier = 0x6669746E // ntif
	IDInstance          Identifier = 0x74736E69 // inst
)

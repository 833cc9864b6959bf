package decode

import (
	"github.com/keurnel/x86codec/architecture/x86_64"
	"github.com/keurnel/x86codec/architecture/x86_64/bytereader"
)

// maybeReadVEX consumes a two- or three-byte VEX prefix if the next byte is
// 0xC5 or 0xC4. A REX prefix and a VEX prefix never coexist on the same
// instruction, so this is only consulted when readREX found nothing.
func maybeReadVEX(r *bytereader.Reader) (*x86_64.VEXPrefix, error) {
	first, ok := r.Peek()
	if !ok {
		return nil, nil
	}

	switch first {
	case 0xC5:
		if _, err := r.ReadByte(); err != nil {
			return nil, err
		}
		b1, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return &x86_64.VEXPrefix{
			ThreeByte: false,
			R:         b1&0x80 == 0,
			X:         false, // not encodable in 2-byte VEX; never extended
			B:         false,
			Map:       x86_64.Map0F,
			W:         false,
			Vvvv:      15 - ((b1 >> 3) & 0x0F),
			L:         b1&0x04 != 0,
			PP:        b1 & 0x03,
		}, nil

	case 0xC4:
		if _, err := r.ReadByte(); err != nil {
			return nil, err
		}
		b1, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		b2, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		mapSelect := b1 & 0x1F
		var opMap x86_64.OpcodeMap
		switch mapSelect {
		case 1:
			opMap = x86_64.Map0F
		case 2:
			opMap = x86_64.Map0F38
		case 3:
			opMap = x86_64.Map0F3A
		default:
			opMap = x86_64.Map0F
		}
		return &x86_64.VEXPrefix{
			ThreeByte: true,
			R:         b1&0x80 == 0,
			X:         b1&0x40 == 0,
			B:         b1&0x20 == 0,
			Map:       opMap,
			W:         b2&0x80 != 0,
			Vvvv:      15 - ((b2 >> 3) & 0x0F),
			L:         b2&0x04 != 0,
			PP:        b2 & 0x03,
		}, nil
	}

	return nil, nil
}

// maybeReadEVEX consumes a four-byte EVEX prefix (escape byte 0x62) if
// present.
func maybeReadEVEX(r *bytereader.Reader) (*x86_64.EVEXPrefix, error) {
	first, ok := r.Peek()
	if !ok || first != 0x62 {
		return nil, nil
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, err
	}
	p0, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	p1, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	p2, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	mapSelect := p0 & 0x03
	var opMap x86_64.OpcodeMap
	switch mapSelect {
	case 1:
		opMap = x86_64.Map0F
	case 2:
		opMap = x86_64.Map0F38
	case 3:
		opMap = x86_64.Map0F3A
	default:
		opMap = x86_64.Map0F
	}

	return &x86_64.EVEXPrefix{
		R:         p0&0x80 == 0,
		X:         p0&0x40 == 0,
		B:         p0&0x20 == 0,
		Rp:        p0&0x10 == 0,
		Map:       opMap,
		W:         p1&0x80 != 0,
		Vvvv:      15 - ((p1 >> 3) & 0x0F),
		Vp:        p2&0x08 == 0,
		PP:        p1 & 0x03,
		Z:         p2&0x80 != 0,
		L:         (p2 >> 5) & 0x03,
		Broadcast: p2&0x10 != 0,
		Mask:      p2 & 0x07,
	}, nil
}

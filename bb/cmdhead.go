package bb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bbfw/makesksa/krypto/aescbc"
)

// CmdHeadSize is the encoded length of a CMD head.
const CmdHeadSize = 0x1AC

// CmdHead is the content metadata head placed in front of every encrypted
// application section. All multi-byte fields are big-endian on the wire.
type CmdHead struct {
	UnusedPadding      uint32
	CaCrlVersion       uint32
	CpCrlVersion       uint32
	Size               uint32
	DescFlags          uint32
	CommonCmdIv        AesIv
	Hash               [20]byte
	Iv                 AesIv
	ExecFlags          uint32
	HwAccessRights     uint32
	SecureKernelRights uint32
	BbId               uint32
	Issuer             [64]byte
	ContentId          uint32
	Key                AesKey
	Sign               [256]byte
}

// NewUnsignedCmdHead builds the CMD head for one application component. The
// payload key is not stored in the clear: it is AES-CBC-encrypted under the
// console's boot app key with keyIv as the IV. size must be the padded payload
// length, since the boot chain walks sections by the lengths declared here.
// The signature region is left zero.
func NewUnsignedCmdHead(key AesKey, iv AesIv, bootAppKey AesKey, keyIv AesIv, size uint32, cid uint32) (*CmdHead, error) {
	encKey, err := aescbc.Encrypt(key[:], bootAppKey[:], keyIv[:])
	if err != nil {
		return nil, fmt.Errorf("could not protect title key: %w", err)
	}

	cmd := &CmdHead{
		Size:        size,
		CommonCmdIv: keyIv,
		Iv:          iv,
		ContentId:   cid,
	}
	copy(cmd.Key[:], encKey)

	return cmd, nil
}

// ToBuf encodes the head into its fixed CmdHeadSize wire form.
func (c *CmdHead) ToBuf() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.BigEndian, c); err != nil {
		return nil, fmt.Errorf("could not encode CMD head: %v", err)
	}
	if buf.Len() != CmdHeadSize {
		return nil, fmt.Errorf("encoded CMD head is 0x%X bytes, want 0x%X", buf.Len(), CmdHeadSize)
	}
	return buf.Bytes(), nil
}

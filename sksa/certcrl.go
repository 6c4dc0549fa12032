package sksa

import _ "embed"

// Frozen placeholder certificate/CRL region appended after every CMD head.
// Downstream dump tools expect the cert chain to sit there even on unsigned
// builds; the contents are a compatibility artifact and are never interpreted.
//
//go:embed certcrl.bin
var dummyCertsCrls []byte

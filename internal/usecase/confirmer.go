package usecase

// confirmThreshold is the number of consecutive identical reads required
// before a decoded code counts as confirmed. Live decoding misreads single
// frames routinely; five in a row rejects that noise while keeping latency
// around five frames for a held-steady barcode.
const confirmThreshold = 5

// ScanConfirmer turns a noisy stream of decoded barcode reads into at most
// one confirmed code per scanning session. It is not safe for concurrent
// use; the owning session serializes frames in arrival order.
type ScanConfirmer struct {
	lastCode    string
	repeatCount int
	confirmed   bool
}

// NewScanConfirmer creates a confirmer for one scanning session
func NewScanConfirmer() *ScanConfirmer {
	return &ScanConfirmer{}
}

// Observe feeds one raw decode event into the confirmer. When the same code
// has been seen confirmThreshold times in a row it is returned with ok=true,
// exactly once; afterwards the confirmer latches and ignores further input.
func (c *ScanConfirmer) Observe(code string) (string, bool) {
	if c.confirmed || code == "" {
		return "", false
	}

	if code == c.lastCode {
		c.repeatCount++
	} else {
		c.lastCode = code
		c.repeatCount = 1
	}

	if c.repeatCount >= confirmThreshold {
		c.confirmed = true
		return c.lastCode, true
	}

	return "", false
}

// Confirmed reports whether this session has already emitted its confirmation
func (c *ScanConfirmer) Confirmed() bool {
	return c.confirmed
}

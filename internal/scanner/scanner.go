// Package scanner reads barcodes from an input device and validates them.
package scanner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInvalidBarcode is returned for codes that are not a valid GTIN.
var ErrInvalidBarcode = errors.New("invalid barcode")

// BarcodeScanner yields one barcode per call. Implementations return io.EOF
// once the device has nothing more to deliver.
type BarcodeScanner interface {
	Scan(ctx context.Context) (string, error)
}

// LineScanner reads one code per line. USB keyboard-wedge scanners type the
// digits followed by Enter, so they arrive the same way as manual entry.
// Blank lines are skipped.
type LineScanner struct {
	lines   chan lineResult
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

type lineResult struct {
	text string
	err  error
}

// NewLineScanner starts reading r in the background. Call Close when done
// scanning early so the reader goroutine can exit.
func NewLineScanner(r io.Reader) *LineScanner {
	s := &LineScanner{
		lines:   make(chan lineResult),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.read(r)
	return s
}

func (s *LineScanner) read(r io.Reader) {
	defer close(s.stopped)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !s.send(lineResult{text: line}) {
			return
		}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	if s.send(lineResult{err: err}) {
		close(s.lines)
	}
}

func (s *LineScanner) send(res lineResult) bool {
	select {
	case s.lines <- res:
		return true
	case <-s.done:
		return false
	}
}

// Close stops delivery. The reader goroutine exits once its current read
// returns; r itself is not closed. Scan returns io.EOF afterwards.
func (s *LineScanner) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Scan returns the next non-blank line, io.EOF at end of input or after
// Close, or ctx.Err() if ctx is cancelled first.
func (s *LineScanner) Scan(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
		return "", io.EOF
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("scanner: reading input: %w", res.err)
		}
		return res.text, res.err
	}
}

// Normalize strips spaces and hyphens from code and checks that the result is
// an EAN-8, UPC-A, EAN-13 or GTIN-14 with a valid check digit.
func Normalize(code string) (string, error) {
	var b strings.Builder
	for _, r := range code {
		switch {
		case r == ' ' || r == '-' || r == '\t':
			continue
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidBarcode, code, r)
		}
	}

	digits := b.String()
	switch len(digits) {
	case 8, 12, 13, 14:
	default:
		return "", fmt.Errorf("%w: %q has %d digits, want 8, 12, 13 or 14", ErrInvalidBarcode, code, len(digits))
	}

	if want := CheckDigit(digits[:len(digits)-1]); int(digits[len(digits)-1]-'0') != want {
		return "", fmt.Errorf("%w: %q check digit should be %d", ErrInvalidBarcode, code, want)
	}
	return digits, nil
}

// GTIN14 left-pads a normalized code with zeros to 14 digits. Leading zeros
// do not change the check digit, so the UPC-A 036000291452 and the EAN-13
// 0036000291452 share one GTIN-14.
func GTIN14(code string) string {
	if len(code) >= 14 {
		return code
	}
	return strings.Repeat("0", 14-len(code)) + code
}

// CheckDigit computes the GS1 mod-10 check digit for payload (all digits).
// Weights alternate 3,1 starting from the rightmost payload digit.
func CheckDigit(payload string) int {
	sum := 0
	for i := 0; i < len(payload); i++ {
		d := int(payload[len(payload)-1-i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

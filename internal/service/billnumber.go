package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Bill identifiers are YYMMDD + a two-digit daily sequence (01..99), dense
// from 1 per date. The prefix comes from the business date, not wall-clock
// time, and stays fixed for the life of the bill.
const (
	billPrefixLayout = "060102"
	maxDailySequence = 99
)

// The viewer token alphabet: digits 1-9 and lowercase a-z. Zero is excluded
// so a token is never misread as o/O when customers type it from a printout.
const (
	hashAlphabet    = "123456789abcdefghijklmnopqrstuvwxyz"
	hashLength      = 8
	hashMaxAttempts = 5
)

// BillPrefix formats a business date as the YYMMDD identifier prefix.
func BillPrefix(date time.Time) string {
	return date.Format(billPrefixLayout)
}

// FormatBillID combines a date prefix with an allocated sequence number.
// Sequence 100 on one date is a hard failure, not a retryable one.
func FormatBillID(prefix string, seq int) (string, error) {
	if seq < 1 {
		return "", fmt.Errorf("bill sequence %d out of range", seq)
	}
	if seq > maxDailySequence {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s%02d", prefix, seq), nil
}

// GenerateBillHash draws an 8-character viewer token uniformly from the
// 35-symbol alphabet. Collisions are astronomically unlikely at single-shop
// scale but the caller still verifies against the store before accepting.
func GenerateBillHash() (string, error) {
	max := big.NewInt(int64(len(hashAlphabet)))
	buf := make([]byte, hashLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate bill hash: %w", err)
		}
		buf[i] = hashAlphabet[n.Int64()]
	}
	return string(buf), nil
}
